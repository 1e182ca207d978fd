// Package nav plans routes across a world's walkable cells.
package nav

import (
	"container/heap"
	"math"

	"github.com/milk9111/wayfarer/world"
)

// DefaultMaxExpansions bounds a single search.
const DefaultMaxExpansions = 1000

// Path is an immutable route from a mover's cell to a destination cell.
// Waypoints are cell centres in pixel space; Cost is in cells, with
// diagonal steps costing √2.
type Path struct {
	Cells     []world.GridCoord
	Waypoints []world.PixelCoord
	Cost      float64
}

// Len returns the number of waypoints.
func (p Path) Len() int {
	return len(p.Waypoints)
}

// Stats describes the most recent search.
type Stats struct {
	Expanded int
	Capped   bool
}

type Option func(*Finder)

// WithMaxExpansions overrides the expansion cap. Values <= 0 keep the default.
func WithMaxExpansions(n int) Option {
	return func(f *Finder) {
		if n > 0 {
			f.maxExpansions = n
		}
	}
}

// Finder runs A* searches. It keeps no state between searches other than
// the diagnostics of the last one.
type Finder struct {
	maxExpansions int
	last          Stats
}

func NewFinder(opts ...Option) *Finder {
	f := &Finder{maxExpansions: DefaultMaxExpansions}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LastStats returns diagnostics for the previous FindPath call.
func (f *Finder) LastStats() Stats {
	if f == nil {
		return Stats{}
	}
	return f.last
}

type neighbor struct {
	dx, dy   int
	cost     float64
	diagonal bool
}

var neighborOffsets = [...]neighbor{
	{dx: 0, dy: -1, cost: 1},
	{dx: 1, dy: 0, cost: 1},
	{dx: 0, dy: 1, cost: 1},
	{dx: -1, dy: 0, cost: 1},
	{dx: 1, dy: -1, cost: math.Sqrt2, diagonal: true},
	{dx: 1, dy: 1, cost: math.Sqrt2, diagonal: true},
	{dx: -1, dy: 1, cost: math.Sqrt2, diagonal: true},
	{dx: -1, dy: -1, cost: math.Sqrt2, diagonal: true},
}

// Octile is the admissible, consistent heuristic for 8-way movement with
// unit cardinal and √2 diagonal steps.
func Octile(a, b world.GridCoord) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

// FindPath plans from the cell under from to the cell under to. It reports
// false when the destination is not walkable, the start is off the grid, no
// route exists, or the expansion cap is reached first.
func (f *Finder) FindPath(w *world.World, from, to world.PixelCoord) (Path, bool) {
	f.last = Stats{}
	if w == nil {
		return Path{}, false
	}

	start := w.ToGrid(from)
	goal := w.ToGrid(to)
	if !w.IsWalkable(goal) || !w.InBounds(start) {
		return Path{}, false
	}

	cells, cost, ok := f.search(w, start, goal)
	if !ok {
		return Path{}, false
	}

	waypoints := make([]world.PixelCoord, len(cells))
	for i, c := range cells {
		waypoints[i] = w.ToPixel(c)
	}
	return Path{Cells: cells, Waypoints: waypoints, Cost: cost}, true
}

func (f *Finder) search(w *world.World, start, goal world.GridCoord) ([]world.GridCoord, float64, bool) {
	// Bookkeeping grows with the cells actually reached, never with the
	// world's area, so the expansion cap bounds both time and memory.
	cameFrom := make(map[world.GridCoord]world.GridCoord, 128)
	gScore := make(map[world.GridCoord]float64, 128)
	closed := make(map[world.GridCoord]bool, 128)
	gScore[start] = 0

	open := &openSet{}
	var seq uint64
	heap.Push(open, &openItem{pos: start, g: 0, f: Octile(start, goal), seq: seq})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		if closed[cur] || current.g > gScore[cur] {
			continue
		}

		if cur == goal {
			return reconstructPath(cameFrom, start, goal), gScore[goal], true
		}

		if f.last.Expanded >= f.maxExpansions {
			f.last.Capped = true
			return nil, 0, false
		}
		f.last.Expanded++
		closed[cur] = true

		for _, d := range neighborOffsets {
			n := world.GridCoord{X: cur.X + d.dx, Y: cur.Y + d.dy}
			if !w.IsWalkable(n) {
				continue
			}
			if d.diagonal && !canCutCorner(w, cur, d) {
				continue
			}
			if closed[n] {
				continue
			}
			tentative := gScore[cur] + d.cost
			if prev, seen := gScore[n]; !seen || tentative < prev {
				cameFrom[n] = cur
				gScore[n] = tentative
				seq++
				heap.Push(open, &openItem{pos: n, g: tentative, f: tentative + Octile(n, goal), seq: seq})
			}
		}
	}

	return nil, 0, false
}

// canCutCorner reports whether a diagonal step from c along d keeps both
// cells sharing an edge with the start and end of the step walkable.
func canCutCorner(w *world.World, c world.GridCoord, d neighbor) bool {
	horizontal := world.GridCoord{X: c.X + d.dx, Y: c.Y}
	vertical := world.GridCoord{X: c.X, Y: c.Y + d.dy}
	return w.IsWalkable(horizontal) && w.IsWalkable(vertical)
}

func reconstructPath(cameFrom map[world.GridCoord]world.GridCoord, start, goal world.GridCoord) []world.GridCoord {
	path := make([]world.GridCoord, 0, 32)
	cur := goal
	for {
		path = append(path, cur)
		if cur == start {
			break
		}
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		cur = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	pos   world.GridCoord
	f     float64
	g     float64
	seq   uint64
	index int
}

// openSet orders by f-score, then by insertion order.
type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
