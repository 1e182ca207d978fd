package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wayfarer/nav"
	"github.com/milk9111/wayfarer/world"
	"github.com/milk9111/wayfarer/world/worldtest"
)

const dt = 1.0 / 60.0

func newController(w *world.World, x, y int) *Controller {
	return NewController(worldtest.Px(w, x, y), Front, DefaultConfig(), nav.NewFinder(), world.Static{World: w})
}

func runUntilIdle(t *testing.T, c *Controller, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks && c.Moving(); i++ {
		c.Update(dt)
	}
	require.False(t, c.Moving(), "agent still moving after %d ticks", maxTicks)
}

func TestFacingToward(t *testing.T) {
	tests := []struct {
		name    string
		dx, dy  float64
		current Facing
		want    Facing
	}{
		{"right", 5, 1, Front, Right},
		{"left", -5, 1, Front, Left},
		{"down", 1, 5, Back, Front},
		{"up", 1, -5, Front, Back},
		{"diagonal_down_is_vertical", 3, 3, Left, Front},
		{"diagonal_up_is_vertical", -3, -3, Right, Back},
		{"zero_keeps_current", 0, 0, Left, Left},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FacingToward(tt.dx, tt.dy, tt.current))
		})
	}
}

func TestAnimationAdvance(t *testing.T) {
	var a Animation
	for i := 0; i < 11; i++ {
		a.Advance(dt, DefaultFrameInterval)
	}
	assert.Equal(t, Stand, a.Pose())

	a.Advance(dt, DefaultFrameInterval)
	assert.Equal(t, Step, a.Pose(), "frame flips after 200ms")

	for i := 0; i < 12; i++ {
		a.Advance(dt, DefaultFrameInterval)
	}
	assert.Equal(t, Stand, a.Pose(), "cycle wraps after two frames")

	a.Advance(0.45, DefaultFrameInterval)
	assert.Equal(t, Stand, a.Pose(), "a long tick flips twice")

	a.Reset()
	assert.Equal(t, Animation{}, a)
}

func TestMoveToArrives(t *testing.T) {
	w := worldtest.Open(8, 8)
	c := newController(w, 0, 0)

	require.True(t, c.MoveTo(worldtest.Px(w, 5, 3)))
	assert.True(t, c.Moving())

	runUntilIdle(t, c, 600)
	assert.Equal(t, worldtest.Px(w, 5, 3), c.Position())
	assert.Nil(t, c.State().Path)
	assert.Equal(t, Stand, c.Pose())
}

func TestMoveToBlockedStaysIdle(t *testing.T) {
	w := worldtest.Rows(
		"...#",
		"....",
	)
	c := newController(w, 0, 0)

	assert.False(t, c.MoveTo(worldtest.Px(w, 3, 0)))
	assert.False(t, c.Moving())
	assert.Nil(t, c.State().Path)
	assert.Equal(t, worldtest.Px(w, 0, 0), c.Position())
}

func TestMoveToBlockedCancelsWalk(t *testing.T) {
	w := worldtest.Rows(
		"...#",
		"....",
	)
	c := newController(w, 0, 1)
	require.True(t, c.MoveTo(worldtest.Px(w, 3, 1)))
	c.Update(dt)
	stopped := c.Position()

	assert.False(t, c.MoveTo(worldtest.Px(w, 3, 0)))
	assert.False(t, c.Moving())

	c.Update(dt)
	assert.Equal(t, stopped, c.Position())
}

func TestMoveToReplacesPathInSameFrame(t *testing.T) {
	w := worldtest.Open(10, 10)
	c := newController(w, 0, 0)

	require.True(t, c.MoveTo(worldtest.Px(w, 9, 0)))
	require.True(t, c.MoveTo(worldtest.Px(w, 0, 9)))

	want, ok := nav.NewFinder().FindPath(w, worldtest.Px(w, 0, 0), worldtest.Px(w, 0, 9))
	require.True(t, ok)

	st := c.State()
	assert.Equal(t, want.Waypoints, st.Path)
	assert.Equal(t, 1, st.Cursor, "start cell is underfoot and skipped")
	assert.Equal(t, Front, c.Facing())

	runUntilIdle(t, c, 1000)
	assert.Equal(t, worldtest.Px(w, 0, 9), c.Position())
}

func TestMoveToResetsAnimation(t *testing.T) {
	w := worldtest.Open(10, 1)
	c := newController(w, 0, 0)
	require.True(t, c.MoveTo(worldtest.Px(w, 9, 0)))
	for i := 0; i < 15; i++ {
		c.Update(dt)
	}
	require.Equal(t, Step, c.Pose())

	require.True(t, c.MoveTo(worldtest.Px(w, 9, 0)))
	assert.Equal(t, Animation{}, c.Animation())
	assert.Equal(t, Stand, c.Pose())
}

func TestFacingFollowsEachLeg(t *testing.T) {
	w := worldtest.Rows(
		"...",
		"##.",
		"...",
	)
	c := newController(w, 0, 0)
	require.True(t, c.MoveTo(worldtest.Px(w, 0, 2)))

	facings := []Facing{c.Facing()}
	sawStepBeforeTurn := false
	for i := 0; i < 300 && c.Moving(); i++ {
		before := c.Facing()
		if before == Right && c.Pose() == Step {
			sawStepBeforeTurn = true
		}
		c.Update(dt)
		if c.Facing() != before {
			facings = append(facings, c.Facing())
			if c.Moving() {
				assert.Equal(t, 0, c.Animation().Frame, "turning restarts the walk cycle")
			}
		}
	}

	assert.Equal(t, []Facing{Right, Front, Left}, facings)
	assert.True(t, sawStepBeforeTurn)
	assert.Equal(t, worldtest.Px(w, 0, 2), c.Position())
	assert.Equal(t, "left-stand", c.FrameKey())
}

func TestSteerKeepsStride(t *testing.T) {
	w := worldtest.Open(10, 1)
	c := newController(w, 0, 0)
	require.True(t, c.MoveTo(worldtest.Px(w, 5, 0)))
	for i := 0; i < 5; i++ {
		c.Update(dt)
	}
	anim := c.Animation()
	require.NotZero(t, anim.Elapsed)

	require.True(t, c.Steer(worldtest.Px(w, 8, 0)))
	assert.Equal(t, anim, c.Animation(), "same heading keeps the stride")
	assert.Equal(t, Right, c.Facing())

	require.True(t, c.Steer(worldtest.Px(w, 0, 0)))
	assert.Equal(t, Left, c.Facing())
	assert.Equal(t, Animation{}, c.Animation(), "turning restarts the stride")
}

func TestSteerFailureStops(t *testing.T) {
	w := worldtest.Rows("....#")
	c := newController(w, 0, 0)
	require.True(t, c.Steer(worldtest.Px(w, 3, 0)))
	c.Update(dt)

	assert.False(t, c.Steer(worldtest.Px(w, 4, 0)))
	assert.False(t, c.Moving())
	assert.Equal(t, "right-stand", c.FrameKey())
}

func TestMoveToOwnCell(t *testing.T) {
	w := worldtest.Open(3, 3)
	c := newController(w, 1, 1)

	assert.True(t, c.MoveTo(worldtest.Px(w, 1, 1)))
	assert.False(t, c.Moving())
	assert.Equal(t, Front, c.Facing())
}

func TestPlaceCancels(t *testing.T) {
	w := worldtest.Open(5, 5)
	c := newController(w, 0, 0)
	require.True(t, c.MoveTo(worldtest.Px(w, 4, 4)))
	c.Update(dt)

	c.Place(worldtest.Px(w, 2, 2))
	assert.False(t, c.Moving())
	assert.Equal(t, worldtest.Px(w, 2, 2), c.Position())
}

func TestUpdateCarriesLeftoverAcrossWaypoints(t *testing.T) {
	w := worldtest.Open(10, 1)
	c := newController(w, 0, 0)
	require.True(t, c.MoveTo(worldtest.Px(w, 9, 0)))

	// 100px/s for 0.4s crosses two and a half cells.
	c.Update(0.4)
	assert.InDelta(t, 40, c.Position().X, 1e-9)
	assert.Equal(t, 0.0, c.Position().Y)
	assert.True(t, c.Moving())
}

func TestStatePathIsACopy(t *testing.T) {
	w := worldtest.Open(8, 8)
	c := newController(w, 0, 0)
	require.True(t, c.MoveTo(worldtest.Px(w, 5, 3)))

	st := c.State()
	require.NotEmpty(t, st.Path)
	for i := range st.Path {
		st.Path[i] = worldtest.Px(w, 7, 7)
	}
	assert.Equal(t, worldtest.Px(w, 5, 3), c.State().Path[len(c.State().Path)-1])

	runUntilIdle(t, c, 600)
	assert.Equal(t, worldtest.Px(w, 5, 3), c.Position())
}
