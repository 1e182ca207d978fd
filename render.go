package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/wayfarer/common"
	"github.com/milk9111/wayfarer/motion"
	"github.com/milk9111/wayfarer/prefabs"
	"github.com/milk9111/wayfarer/session"
	"github.com/milk9111/wayfarer/world"
)

const (
	agentWidth  = 10
	agentHeight = 12
	// objectInset shrinks tiles on layers above the ground so they read as
	// things standing on it.
	objectInset   = 2
	overhangAlpha = 0.7
)

// Renderer draws a session snapshot with placeholder colours: tiles from the
// tile palette, agents as blocks.
type Renderer struct {
	palette        map[world.Tile]color.Color
	leaderColor    color.Color
	companionColor color.Color
	markerColor    color.Color
	markerRadius   float64
}

func NewRenderer(agents *prefabs.AgentsSpec, tiles *prefabs.TilesSpec) *Renderer {
	r := &Renderer{
		palette:        map[world.Tile]color.Color{},
		leaderColor:    colornames.Royalblue,
		companionColor: colornames.Coral,
		markerColor:    colornames.Yellow,
		markerRadius:   8,
	}
	if tiles != nil {
		r.palette = tiles.Palette()
	}
	if agents != nil {
		r.leaderColor = specColor(agents.Leader.Color, r.leaderColor)
		r.companionColor = specColor(agents.Companion.Color, r.companionColor)
		r.markerColor = specColor(agents.Marker.Color, r.markerColor)
		if agents.Marker.Radius > 0 {
			r.markerRadius = agents.Marker.Radius
		}
	}
	return r
}

func specColor(c *prefabs.YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

// view maps world pixels to screen pixels, centred on the camera.
type view struct {
	x, y, zoom float64
}

func (v view) toScreen(p world.PixelCoord) (float32, float32) {
	return float32((p.X-v.x)*v.zoom + common.BaseWidth/2), float32((p.Y-v.y)*v.zoom + common.BaseHeight/2)
}

func (r *Renderer) Draw(screen *ebiten.Image, snap session.Snapshot, debug bool) {
	screen.Fill(colornames.Black)
	if snap.World == nil {
		return
	}

	v := view{x: snap.Camera.X, y: snap.Camera.Y, zoom: snap.Camera.Zoom}
	if v.zoom <= 0 {
		v.zoom = 1
	}

	r.drawTiles(screen, snap.World, v, false)
	if debug {
		r.drawDebug(screen, snap, v)
	}
	for _, a := range snap.Agents {
		r.drawAgent(screen, a, v)
	}
	r.drawTiles(screen, snap.World, v, true)
	r.drawMarker(screen, snap.Marker, v)

	if debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  frame: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), snap.Frame), 10, common.BaseHeight-20)
	}
}

// drawTiles draws either the overhang cells or everything else.
func (r *Renderer) drawTiles(screen *ebiten.Image, w *world.World, v view, overhang bool) {
	cell := float64(w.CellSize)
	if cell <= 0 {
		cell = float64(world.DefaultCellSize)
	}

	halfW := common.BaseWidth / 2 / v.zoom
	halfH := common.BaseHeight / 2 / v.zoom
	minC := w.ToGrid(world.PixelCoord{X: v.x - halfW, Y: v.y - halfH})
	maxC := w.ToGrid(world.PixelCoord{X: v.x + halfW, Y: v.y + halfH})

	for i, l := range w.Layers {
		if !l.Visible {
			continue
		}
		inset := 0.0
		if i > 0 {
			inset = objectInset
		}
		for y := max(minC.Y, 0); y <= min(maxC.Y, w.Height-1); y++ {
			for x := max(minC.X, 0); x <= min(maxC.X, w.Width-1); x++ {
				c := world.GridCoord{X: x, Y: y}
				tile, ok := w.TileAt(i, c)
				if !ok || w.IsAboveAgent(i, c) != overhang {
					continue
				}
				clr, ok := r.palette[tile]
				if !ok {
					clr = colornames.Gray
				}
				if overhang {
					clr = fade(clr, overhangAlpha)
				}

				center := w.ToPixel(c)
				sx, sy := v.toScreen(world.PixelCoord{X: center.X - cell/2 + inset, Y: center.Y - cell/2 + inset})
				size := float32((cell - 2*inset) * v.zoom)
				vector.FillRect(screen, sx, sy, size, size, clr, false)
			}
		}
	}
}

func (r *Renderer) drawAgent(screen *ebiten.Image, a session.AgentSnapshot, v view) {
	clr := r.companionColor
	if a.Leader {
		clr = r.leaderColor
	}

	bob := 0.0
	if a.Moving && a.Pose == motion.Step {
		bob = 1
	}
	top := world.PixelCoord{X: a.Position.X - agentWidth/2, Y: a.Position.Y - agentHeight + 4 - bob}
	sx, sy := v.toScreen(top)
	z := float32(v.zoom)
	vector.FillRect(screen, sx, sy, agentWidth*z, agentHeight*z, clr, false)

	// A dark notch on the side the agent faces.
	var nx, ny float32
	switch a.Facing {
	case motion.Front:
		nx, ny = agentWidth/2-1.5, agentHeight-4
	case motion.Back:
		nx, ny = agentWidth/2-1.5, 0
	case motion.Left:
		nx, ny = 0, 3
	case motion.Right:
		nx, ny = agentWidth-3, 3
	}
	vector.FillRect(screen, sx+nx*z, sy+ny*z, 3*z, 3*z, colornames.Black, false)
}

func (r *Renderer) drawMarker(screen *ebiten.Image, m *session.MarkerSnapshot, v view) {
	if m == nil || m.Alpha <= 0 {
		return
	}
	sx, sy := v.toScreen(m.Position)
	vector.StrokeCircle(screen, sx, sy, float32(r.markerRadius*v.zoom), 2, fade(r.markerColor, m.Alpha), true)
}

func (r *Renderer) drawDebug(screen *ebiten.Image, snap session.Snapshot, v view) {
	for _, p := range snap.Trail {
		sx, sy := v.toScreen(p)
		vector.FillCircle(screen, sx, sy, 1.5, colornames.Orange, true)
	}
	if snap.HasTarget {
		sx, sy := v.toScreen(snap.Target)
		vector.StrokeCircle(screen, sx, sy, 4, 1, colornames.Red, true)
	}

	for _, a := range snap.Agents {
		if !a.Moving {
			continue
		}
		clr := colornames.White
		if !a.Leader {
			clr = colornames.Lightsalmon
		}
		prevX, prevY := v.toScreen(a.Position)
		for i := a.Cursor; i < len(a.Path); i++ {
			sx, sy := v.toScreen(a.Path[i])
			vector.StrokeLine(screen, prevX, prevY, sx, sy, 1, clr, true)
			vector.FillCircle(screen, sx, sy, 2, clr, true)
			prevX, prevY = sx, sy
		}
	}
}

func fade(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * common.Clamp(alpha, 0, 1)))
	return n
}
