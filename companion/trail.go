package companion

import "github.com/milk9111/wayfarer/world"

// Trail is a fixed-capacity FIFO of leader positions, recorded only after
// the leader has moved more than spacing pixels from the newest sample.
type Trail struct {
	buf     []world.PixelCoord
	start   int
	n       int
	spacing float64
	seq     uint64
}

func NewTrail(capacity int, spacing float64) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]world.PixelCoord, capacity), spacing: spacing}
}

// Sample records p when the trail is empty or p is strictly farther than the
// spacing from the newest sample. The oldest sample is evicted once full.
func (t *Trail) Sample(p world.PixelCoord) bool {
	if newest, ok := t.Newest(); ok && newest.DistanceTo(p) <= t.spacing {
		return false
	}

	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
	} else {
		t.buf[t.start] = p
		t.start = (t.start + 1) % len(t.buf)
	}
	t.seq++
	return true
}

func (t *Trail) Len() int {
	return t.n
}

func (t *Trail) Cap() int {
	return len(t.buf)
}

// At returns the i-th sample, oldest first.
func (t *Trail) At(i int) (world.PixelCoord, bool) {
	if i < 0 || i >= t.n {
		return world.PixelCoord{}, false
	}
	return t.buf[(t.start+i)%len(t.buf)], true
}

func (t *Trail) Newest() (world.PixelCoord, bool) {
	return t.At(t.n - 1)
}

// Points copies the samples out, oldest first.
func (t *Trail) Points() []world.PixelCoord {
	out := make([]world.PixelCoord, t.n)
	for i := range out {
		out[i], _ = t.At(i)
	}
	return out
}

// Seq counts accepted samples over the trail's lifetime. It never decreases,
// not even across Reset.
func (t *Trail) Seq() uint64 {
	return t.seq
}

func (t *Trail) Reset() {
	t.start = 0
	t.n = 0
}
