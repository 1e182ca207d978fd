// Package input turns player intent into destination requests.
package input

import "github.com/milk9111/wayfarer/world"

// Source yields the move requests gathered since the last poll, oldest
// first. Poll is called once per frame.
type Source interface {
	Poll() []world.PixelCoord
}

// Queue is a Source fed by code: tests, the HUD, or tools.
type Queue struct {
	pending []world.PixelCoord
}

func (q *Queue) Push(p world.PixelCoord) {
	q.pending = append(q.pending, p)
}

func (q *Queue) Poll() []world.PixelCoord {
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Multi polls several sources in order.
type Multi []Source

func (m Multi) Poll() []world.PixelCoord {
	var out []world.PixelCoord
	for _, src := range m {
		if src == nil {
			continue
		}
		out = append(out, src.Poll()...)
	}
	return out
}
