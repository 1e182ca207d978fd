package world

import (
	"math"

	"github.com/jakecoffman/cp"
)

// PixelCoord is a continuous position in world pixel space.
type PixelCoord struct {
	X float64
	Y float64
}

// Vec converts p for use with cp vector math.
func (p PixelCoord) Vec() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

// FromVec is the inverse of Vec.
func FromVec(v cp.Vector) PixelCoord {
	return PixelCoord{X: v.X, Y: v.Y}
}

// DistanceTo returns the euclidean distance between p and q.
func (p PixelCoord) DistanceTo(q PixelCoord) float64 {
	return p.Vec().Distance(q.Vec())
}

// ToGrid maps a pixel to the nearest cell centre. Cells are anchored at their
// centres, so this rounds rather than floors. Half-way points resolve toward
// +x/+y on either side of the origin. The result is not bounds-checked.
func (w *World) ToGrid(p PixelCoord) GridCoord {
	size := float64(w.cellSize())
	return GridCoord{
		X: int(math.Floor((p.X-w.Origin.X)/size + 0.5)),
		Y: int(math.Floor((p.Y-w.Origin.Y)/size + 0.5)),
	}
}

// ToPixel returns the pixel centre of c.
func (w *World) ToPixel(c GridCoord) PixelCoord {
	size := float64(w.cellSize())
	return PixelCoord{
		X: w.Origin.X + float64(c.X)*size,
		Y: w.Origin.Y + float64(c.Y)*size,
	}
}

// CenteredOrigin returns the origin that centres w in a view of the given
// size.
func CenteredOrigin(w *World, viewW, viewH float64) PixelCoord {
	size := float64(w.cellSize())
	return PixelCoord{
		X: viewW/2 - float64(w.Width)*size/2,
		Y: viewH/2 - float64(w.Height)*size/2,
	}
}

// WithOrigin returns a copy of w placed at origin. Layers, overrides and
// tile types are shared with w.
func (w *World) WithOrigin(origin PixelCoord) *World {
	c := *w
	c.Origin = origin
	return &c
}

func (w *World) cellSize() int {
	if w == nil || w.CellSize <= 0 {
		return DefaultCellSize
	}
	return w.CellSize
}
