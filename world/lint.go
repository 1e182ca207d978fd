package world

import "fmt"

// Problems lists structural defects that Decode tolerates: ragged or missing
// rows and overrides that point outside the grid or at a missing layer.
// Navigation treats every gap as an empty cell, so these only make a world
// more walkable than its author intended.
func (w *World) Problems() []string {
	if w == nil {
		return []string{"nil world"}
	}
	var out []string
	for i, l := range w.Layers {
		if len(l.Tiles) != w.Height {
			out = append(out, fmt.Sprintf("layer %d (%s): %d rows, want %d", i, l.Name, len(l.Tiles), w.Height))
		}
		for y, row := range l.Tiles {
			if len(row) != w.Width {
				out = append(out, fmt.Sprintf("layer %d (%s): row %d has %d cells, want %d", i, l.Name, y, len(row), w.Width))
			}
		}
	}
	for _, k := range w.OverrideKeys() {
		if k.Layer >= len(w.Layers) {
			out = append(out, fmt.Sprintf("override %s: no layer %d", k, k.Layer))
			continue
		}
		if !w.InBounds(GridCoord{X: k.X, Y: k.Y}) {
			out = append(out, fmt.Sprintf("override %s: outside %dx%d", k, w.Width, w.Height))
		}
	}
	if !w.IsWalkable(w.Spawn) {
		out = append(out, fmt.Sprintf("spawn %s is not walkable", w.Spawn))
	}
	return out
}
