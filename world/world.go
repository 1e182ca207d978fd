// Package world describes a static tile world and answers the two questions
// navigation asks of it: where is a cell, and may an agent stand there.
package world

import "fmt"

// Tile is a tile index within a sprite sheet. NoTile marks an empty cell.
type Tile int

const NoTile Tile = -1

// GridCoord identifies one cell.
type GridCoord struct {
	X int
	Y int
}

func (g GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", g.X, g.Y)
}

// Layer is one grid-shaped sheet of tiles. Tiles is indexed [y][x]; rows may
// be ragged in malformed worlds and every lookup tolerates that.
type Layer struct {
	Name    string
	Sheet   string
	Visible bool
	Tiles   [][]Tile
}

// CellKey addresses a per-cell override on a specific layer.
type CellKey struct {
	Layer int
	X     int
	Y     int
}

// TileOverride holds the properties of a single cell that differ from its
// tile type. Nil fields fall back to the type default.
type TileOverride struct {
	Walkable   *bool `json:"walkable,omitempty"`
	AboveAgent *bool `json:"above_agent,omitempty"`
}

// World is immutable for the lifetime of a navigation session.
type World struct {
	Name      string
	Width     int
	Height    int
	CellSize  int
	Origin    PixelCoord
	Spawn     GridCoord
	Layers    []Layer
	Overrides map[CellKey]TileOverride
	Types     TileTypes
}

// Provider hands out the world currently loaded.
type Provider interface {
	Current() *World
}

// Static is a Provider for a fixed world.
type Static struct {
	World *World
}

func (s Static) Current() *World {
	return s.World
}

// InBounds reports whether c lies within [0,Width) x [0,Height).
func (w *World) InBounds(c GridCoord) bool {
	if w == nil {
		return false
	}
	return c.X >= 0 && c.Y >= 0 && c.X < w.Width && c.Y < w.Height
}

// LayerCount returns the number of layers.
func (w *World) LayerCount() int {
	if w == nil {
		return 0
	}
	return len(w.Layers)
}

// TileAt returns the tile on layer at c. Missing layers, rows or columns
// report (NoTile, false) instead of panicking.
func (w *World) TileAt(layer int, c GridCoord) (Tile, bool) {
	if w == nil || layer < 0 || layer >= len(w.Layers) || c.X < 0 || c.Y < 0 {
		return NoTile, false
	}
	rows := w.Layers[layer].Tiles
	if c.Y >= len(rows) {
		return NoTile, false
	}
	row := rows[c.Y]
	if c.X >= len(row) {
		return NoTile, false
	}
	t := row[c.X]
	if t == NoTile {
		return NoTile, false
	}
	return t, true
}

// IsWalkable reports whether an agent may occupy c.
//
// Every layer with a tile at c is consulted: the cell's override on that
// layer wins, otherwise the tile type default applies. A single non-walkable
// layer blocks the cell. Cells with no tile on any layer are walkable.
func (w *World) IsWalkable(c GridCoord) bool {
	if !w.InBounds(c) {
		return false
	}
	for i := range w.Layers {
		tile, ok := w.TileAt(i, c)
		if !ok {
			continue
		}
		if o, ok := w.Overrides[CellKey{Layer: i, X: c.X, Y: c.Y}]; ok && o.Walkable != nil {
			if !*o.Walkable {
				return false
			}
			continue
		}
		if !w.Types.Walkable(tile) {
			return false
		}
	}
	return true
}

// IsAboveAgent reports whether the tile on layer at c is drawn over agents.
func (w *World) IsAboveAgent(layer int, c GridCoord) bool {
	if w == nil {
		return false
	}
	if o, ok := w.Overrides[CellKey{Layer: layer, X: c.X, Y: c.Y}]; ok && o.AboveAgent != nil {
		return *o.AboveAgent
	}
	return false
}
