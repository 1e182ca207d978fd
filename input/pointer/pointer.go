// Package pointer reads mouse clicks and taps from ebiten.
package pointer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/wayfarer/world"
)

// ScreenToWorld maps a screen pixel to a world pixel.
type ScreenToWorld func(sx, sy float64) world.PixelCoord

// Pointer is an input.Source for the left mouse button and touches.
type Pointer struct {
	toWorld ScreenToWorld
	touches []ebiten.TouchID
}

func New(toWorld ScreenToWorld) *Pointer {
	return &Pointer{toWorld: toWorld}
}

// Poll must be called from the game's Update.
func (p *Pointer) Poll() []world.PixelCoord {
	if p == nil || p.toWorld == nil {
		return nil
	}

	var out []world.PixelCoord
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		out = append(out, p.toWorld(float64(x), float64(y)))
	}

	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		out = append(out, p.toWorld(float64(x), float64(y)))
	}
	return out
}
