package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rock Tile = 50

func boolPtr(b bool) *bool {
	return &b
}

func filledLayer(w, h int, t Tile) Layer {
	rows := make([][]Tile, h)
	for y := range rows {
		rows[y] = make([]Tile, w)
		for x := range rows[y] {
			rows[y][x] = t
		}
	}
	return Layer{Name: "ground", Visible: true, Tiles: rows}
}

func emptyLayer(w, h int) Layer {
	l := filledLayer(w, h, NoTile)
	l.Name = "decor"
	return l
}

func testWorld() *World {
	return &World{
		Width:     4,
		Height:    3,
		CellSize:  16,
		Layers:    []Layer{filledLayer(4, 3, 10), emptyLayer(4, 3)},
		Overrides: map[CellKey]TileOverride{},
		Types: TileTypes{
			10:   {Name: "grass", Walkable: true},
			rock: {Name: "rock", Walkable: false},
		},
	}
}

func TestIsWalkable(t *testing.T) {
	cases := []struct {
		name  string
		setup func(w *World)
		cell  GridCoord
		want  bool
	}{
		{"plain_ground", nil, GridCoord{1, 1}, true},
		{"left_of_grid", nil, GridCoord{-1, 0}, false},
		{"below_grid", nil, GridCoord{0, 3}, false},
		{"right_of_grid", nil, GridCoord{4, 0}, false},
		{
			name:  "type_default_blocks",
			setup: func(w *World) { w.Layers[0].Tiles[1][2] = rock },
			cell:  GridCoord{2, 1},
			want:  false,
		},
		{
			name: "override_unblocks_type",
			setup: func(w *World) {
				w.Layers[0].Tiles[1][2] = rock
				w.Overrides[CellKey{Layer: 0, X: 2, Y: 1}] = TileOverride{Walkable: boolPtr(true)}
			},
			cell: GridCoord{2, 1},
			want: true,
		},
		{
			name:  "upper_layer_type_blocks",
			setup: func(w *World) { w.Layers[1].Tiles[0][0] = rock },
			cell:  GridCoord{0, 0},
			want:  false,
		},
		{
			name: "override_on_empty_layer_ignored",
			setup: func(w *World) {
				w.Overrides[CellKey{Layer: 1, X: 3, Y: 2}] = TileOverride{Walkable: boolPtr(false)}
			},
			cell: GridCoord{3, 2},
			want: true,
		},
		{
			name: "no_tiles_anywhere",
			setup: func(w *World) {
				w.Layers[0] = emptyLayer(4, 3)
			},
			cell: GridCoord{1, 1},
			want: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := testWorld()
			if c.setup != nil {
				c.setup(w)
			}
			assert.Equal(t, c.want, w.IsWalkable(c.cell))
		})
	}
}

func TestIsWalkableLayerOverrideAND(t *testing.T) {
	w := testWorld()
	cell := GridCoord{X: 1, Y: 2}
	key := CellKey{Layer: 1, X: 1, Y: 2}

	w.Layers[1].Tiles[2][1] = 10
	require.True(t, w.IsWalkable(cell), "walkable tiles on both layers")

	w.Overrides[key] = TileOverride{Walkable: boolPtr(false)}
	assert.False(t, w.IsWalkable(cell), "override on layer 1 must block a walkable ground cell")

	delete(w.Overrides, key)
	assert.True(t, w.IsWalkable(cell), "removing the override restores walkability")
}

func TestMalformedWorldDegradesToWalkable(t *testing.T) {
	w := testWorld()
	w.Layers[0].Tiles = w.Layers[0].Tiles[:2]
	w.Layers[0].Tiles[1] = w.Layers[0].Tiles[1][:1]
	w.Layers[1].Tiles = nil
	w.Layers[0].Tiles[0][3] = rock

	assert.True(t, w.IsWalkable(GridCoord{0, 2}), "missing row")
	assert.True(t, w.IsWalkable(GridCoord{2, 1}), "short row")
	assert.False(t, w.IsWalkable(GridCoord{3, 0}), "present tiles still count")

	tile, ok := w.TileAt(0, GridCoord{2, 1})
	assert.False(t, ok)
	assert.Equal(t, NoTile, tile)

	_, ok = w.TileAt(5, GridCoord{0, 0})
	assert.False(t, ok, "missing layer")

	problems := w.Problems()
	assert.NotEmpty(t, problems)
}

func TestIsAboveAgent(t *testing.T) {
	w := testWorld()
	w.Overrides[CellKey{Layer: 1, X: 2, Y: 0}] = TileOverride{AboveAgent: boolPtr(true)}

	assert.True(t, w.IsAboveAgent(1, GridCoord{2, 0}))
	assert.False(t, w.IsAboveAgent(0, GridCoord{2, 0}))
	assert.False(t, w.IsAboveAgent(1, GridCoord{1, 0}))
}

func TestToGridRounds(t *testing.T) {
	w := &World{Width: 10, Height: 10, CellSize: 16, Origin: PixelCoord{X: 100, Y: 50}}

	cases := []struct {
		name string
		in   PixelCoord
		want GridCoord
	}{
		{"origin", PixelCoord{100, 50}, GridCoord{0, 0}},
		{"just_below_half", PixelCoord{107.9, 57.9}, GridCoord{0, 0}},
		{"half_rounds_up", PixelCoord{108, 58}, GridCoord{1, 1}},
		{"cell_centre", PixelCoord{132, 82}, GridCoord{2, 2}},
		{"negative_half", PixelCoord{92, 42}, GridCoord{0, 0}},
		{"negative_past_half", PixelCoord{91.9, 41.9}, GridCoord{-1, -1}},
		{"far_outside", PixelCoord{1000, -1000}, GridCoord{56, -66}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, w.ToGrid(c.in))
		})
	}
}

func TestToPixelInverse(t *testing.T) {
	w := &World{Width: 10, Height: 10, CellSize: 16, Origin: PixelCoord{X: -24, Y: 8}}
	for _, g := range []GridCoord{{0, 0}, {3, 7}, {9, 9}, {-2, 11}} {
		p := w.ToPixel(g)
		assert.Equal(t, g, w.ToGrid(p), "round trip of %v", g)
	}
	assert.Equal(t, PixelCoord{X: 24, Y: 56}, w.ToPixel(GridCoord{3, 3}))
}

func TestCenteredOrigin(t *testing.T) {
	w := &World{Width: 20, Height: 10, CellSize: 16}
	origin := CenteredOrigin(w, 1280, 720)
	assert.Equal(t, PixelCoord{X: 640 - 160, Y: 360 - 80}, origin)

	placed := w.WithOrigin(origin)
	assert.Equal(t, PixelCoord{}, w.Origin, "the source world is not moved")
	assert.Equal(t, PixelCoord{X: 480 + 48, Y: 280 + 32}, placed.ToPixel(GridCoord{X: 3, Y: 2}))
	for _, g := range []GridCoord{{0, 0}, {3, 2}, {19, 9}} {
		assert.Equal(t, g, placed.ToGrid(placed.ToPixel(g)))
	}
}

func TestDecode(t *testing.T) {
	src := []byte(`{
		"name": "Test",
		"width": 3,
		"height": 2,
		"spawn": {"x": 1, "y": 1},
		"layers": [
			{"name": "Ground", "sprite_sheet": "tileset", "tiles": [[10, 10, 10], [10, 50, null]]},
			{"name": "Objects", "sprite_sheet": "objects", "visible": false, "tiles": [[null, 7, null]]}
		],
		"tile_properties": {
			"1-1-0": {"walkable": false, "above_agent": true},
			"0-1-1": {"walkable": true}
		}
	}`)

	w, err := Decode(src, TileTypes{rock: {Name: "rock", Walkable: false}})
	require.NoError(t, err)

	assert.Equal(t, "Test", w.Name)
	assert.Equal(t, DefaultCellSize, w.CellSize)
	assert.Equal(t, GridCoord{1, 1}, w.Spawn)
	require.Equal(t, 2, w.LayerCount())
	assert.True(t, w.Layers[0].Visible)
	assert.False(t, w.Layers[1].Visible)

	tile, ok := w.TileAt(0, GridCoord{2, 1})
	assert.False(t, ok, "null decodes to an empty cell")
	assert.Equal(t, NoTile, tile)

	assert.True(t, w.IsWalkable(GridCoord{1, 1}), "override beats rock default")
	assert.False(t, w.IsWalkable(GridCoord{1, 0}), "objects layer override blocks")
	assert.True(t, w.IsAboveAgent(1, GridCoord{1, 0}))
	assert.Equal(t, []CellKey{{0, 1, 1}, {1, 1, 0}}, w.OverrideKeys())
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"zero_width", `{"width": 0, "height": 2, "layers": []}`},
		{"spawn_outside", `{"width": 2, "height": 2, "spawn": {"x": 2, "y": 0}}`},
		{"bad_key", `{"width": 2, "height": 2, "tile_properties": {"0-1": {"walkable": false}}}`},
		{"negative_cell", `{"width": 2, "height": 2, "cell_size": -4}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode([]byte(c.src), nil)
			assert.ErrorIs(t, err, ErrInvalidWorld)
		})
	}

	_, err := Decode([]byte(`{`), nil)
	assert.Error(t, err)
}

func TestEncodeKeepsEmptyCells(t *testing.T) {
	w := testWorld()
	w.Name = "enc"
	w.Layers[1].Tiles[0][2] = 7
	w.Overrides[CellKey{Layer: 1, X: 2, Y: 0}] = TileOverride{AboveAgent: boolPtr(true)}

	data, err := Encode(w)
	require.NoError(t, err)

	back, err := Decode(data, w.Types)
	require.NoError(t, err)
	tile, ok := back.TileAt(1, GridCoord{2, 0})
	require.True(t, ok)
	assert.Equal(t, Tile(7), tile)
	_, ok = back.TileAt(1, GridCoord{1, 0})
	assert.False(t, ok)
	assert.True(t, back.IsAboveAgent(1, GridCoord{2, 0}))
}
