package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wayfarer/world"
	"github.com/milk9111/wayfarer/world/worldtest"
)

func TestQueueDrains(t *testing.T) {
	var q Queue
	assert.Nil(t, q.Poll())

	q.Push(world.PixelCoord{X: 1, Y: 2})
	q.Push(world.PixelCoord{X: 3, Y: 4})
	assert.Equal(t, []world.PixelCoord{{X: 1, Y: 2}, {X: 3, Y: 4}}, q.Poll())
	assert.Nil(t, q.Poll())
}

func TestMultiKeepsOrder(t *testing.T) {
	var a, b Queue
	a.Push(world.PixelCoord{X: 1})
	b.Push(world.PixelCoord{X: 2})
	b.Push(world.PixelCoord{X: 3})

	m := Multi{&a, nil, &b}
	got := m.Poll()
	require.Len(t, got, 3)
	assert.Equal(t, []float64{1, 2, 3}, []float64{got[0].X, got[1].X, got[2].X})
	assert.Empty(t, m.Poll())
}

func TestScriptClicks(t *testing.T) {
	w := worldtest.Open(10, 10)
	src := []byte(`
if frame == 2 {
	click = cell_center(3, 4)
} else if frame == 3 {
	click = [5, 6.5]
}
`)
	s, err := NewScript("test", src, world.Static{World: w})
	require.NoError(t, err)

	assert.Empty(t, s.Poll())
	assert.Empty(t, s.Poll())
	assert.Equal(t, []world.PixelCoord{worldtest.Px(w, 3, 4)}, s.Poll())
	assert.Equal(t, []world.PixelCoord{{X: 5, Y: 6.5}}, s.Poll())
	assert.Empty(t, s.Poll(), "click resets every run")
}

func TestScriptWorldSize(t *testing.T) {
	w := worldtest.Open(7, 3)
	src := []byte(`
size := world_size()
click = [size[0], size[1]]
`)
	s, err := NewScript("size", src, world.Static{World: w})
	require.NoError(t, err)
	assert.Equal(t, []world.PixelCoord{{X: 7, Y: 3}}, s.Poll())
}

func TestScriptCompileError(t *testing.T) {
	_, err := NewScript("broken", []byte(`click = [1,`), nil)
	assert.Error(t, err)
}

func TestScriptRuntimeErrorGoesQuiet(t *testing.T) {
	src := []byte(`
if frame == 0 {
	click = [1, 1]
} else {
	click = cell_center("a", 1)
}
`)
	s, err := NewScript("bad_call", src, world.Static{World: worldtest.Open(2, 2)})
	require.NoError(t, err)

	assert.Len(t, s.Poll(), 1)
	assert.Empty(t, s.Poll())
	assert.Empty(t, s.Poll())
}

func TestScriptBadClickShape(t *testing.T) {
	s, err := NewScript("shape", []byte(`click = [1, 2, 3]`), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Poll())
}
