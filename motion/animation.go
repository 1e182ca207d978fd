package motion

// Pose is one frame of the two-frame walk cycle.
type Pose int

const (
	Stand Pose = iota
	Step
)

const walkFrames = 2

func (p Pose) String() string {
	if p == Step {
		return "step"
	}
	return "stand"
}

// Animation is the walk-cycle phase counter. It is advanced once per tick
// and never reads a clock.
type Animation struct {
	Frame   int
	Elapsed float64
}

// Reset returns the cycle to the stand frame.
func (a *Animation) Reset() {
	*a = Animation{}
}

// Advance moves the cycle forward by dt seconds, flipping frames every
// interval seconds.
func (a *Animation) Advance(dt, interval float64) {
	if a == nil || interval <= 0 || dt <= 0 {
		return
	}
	a.Elapsed += dt
	// tolerate accumulated rounding from fixed-step dt
	for a.Elapsed+1e-9 >= interval {
		a.Elapsed -= interval
		a.Frame = (a.Frame + 1) % walkFrames
	}
	if a.Elapsed < 0 {
		a.Elapsed = 0
	}
}

func (a Animation) Pose() Pose {
	return Pose(a.Frame % walkFrames)
}
