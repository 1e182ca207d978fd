// Package worldtest builds small worlds from ASCII rows for tests.
package worldtest

import "github.com/milk9111/wayfarer/world"

const (
	Grass world.Tile = 0
	Wall  world.Tile = 1
)

// Rows builds a single-layer world where '#' is a wall and anything else is
// grass. Cells are 16px with the origin at zero.
func Rows(rows ...string) *world.World {
	tiles := make([][]world.Tile, len(rows))
	width := 0
	for y, row := range rows {
		tiles[y] = make([]world.Tile, len(row))
		for x, ch := range row {
			if ch == '#' {
				tiles[y][x] = Wall
			} else {
				tiles[y][x] = Grass
			}
		}
		width = max(width, len(row))
	}
	return &world.World{
		Name:     "test",
		Width:    width,
		Height:   len(rows),
		CellSize: world.DefaultCellSize,
		Layers:   []world.Layer{{Name: "ground", Visible: true, Tiles: tiles}},
		Types:    Types(),
	}
}

// Types is the tile table Rows uses.
func Types() world.TileTypes {
	return world.TileTypes{Wall: {Name: "wall", Walkable: false}}
}

// Open builds a w x h world with no walls.
func Open(w, h int) *world.World {
	rows := make([]string, h)
	for y := range rows {
		b := make([]byte, w)
		for x := range b {
			b[x] = '.'
		}
		rows[y] = string(b)
	}
	return Rows(rows...)
}

// Px returns the pixel centre of cell (x, y).
func Px(w *world.World, x, y int) world.PixelCoord {
	return w.ToPixel(world.GridCoord{X: x, Y: y})
}
