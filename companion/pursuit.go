// Package companion steers a follower toward a delayed point on its leader's
// trail instead of the leader's live position.
package companion

import (
	"github.com/milk9111/wayfarer/motion"
	"github.com/milk9111/wayfarer/world"
)

const (
	DefaultTrailCapacity  = 50
	DefaultSampleSpacing  = 8.0
	DefaultFollowDistance = 5
	DefaultStopThreshold  = 5.0
)

type Config struct {
	TrailCapacity  int
	SampleSpacing  float64 // pixels
	FollowDistance int     // samples behind the newest
	StopThreshold  float64 // pixels
}

func DefaultConfig() Config {
	return Config{
		TrailCapacity:  DefaultTrailCapacity,
		SampleSpacing:  DefaultSampleSpacing,
		FollowDistance: DefaultFollowDistance,
		StopThreshold:  DefaultStopThreshold,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TrailCapacity <= 0 {
		c.TrailCapacity = d.TrailCapacity
	}
	if c.SampleSpacing <= 0 {
		c.SampleSpacing = d.SampleSpacing
	}
	if c.FollowDistance <= 0 {
		c.FollowDistance = d.FollowDistance
	}
	if c.StopThreshold <= 0 {
		c.StopThreshold = d.StopThreshold
	}
	return c
}

// Pursuit drives one follower. It only ever reads the leader's position.
type Pursuit struct {
	cfg   Config
	ctrl  *motion.Controller
	trail *Trail

	target    world.PixelCoord
	hasTarget bool

	// seq of the trail when the follower was last steered
	steeredSeq uint64
	steered    bool
	failures   int
}

func New(ctrl *motion.Controller, cfg Config) *Pursuit {
	cfg = cfg.withDefaults()
	return &Pursuit{
		cfg:   cfg,
		ctrl:  ctrl,
		trail: NewTrail(cfg.TrailCapacity, cfg.SampleSpacing),
	}
}

// Seed forgets the old trail and starts a new one from the follower to the
// leader, so the follower holds still until the leader has moved.
func (p *Pursuit) Seed(leader world.PixelCoord) {
	p.trail.Reset()
	p.trail.Sample(p.ctrl.Position())
	p.trail.Sample(leader)
	p.hasTarget = false
	p.steered = false
}

// Update samples the leader, steers the follower when the trail has advanced
// and then ticks the follower's controller.
func (p *Pursuit) Update(leader world.PixelCoord, dt float64) {
	p.trail.Sample(leader)

	target, ok := p.trail.At(p.targetIndex())
	p.target, p.hasTarget = target, ok
	if !ok {
		p.ctrl.Update(dt)
		return
	}

	if p.ctrl.Position().DistanceTo(target) <= p.cfg.StopThreshold {
		if p.ctrl.Moving() {
			p.ctrl.Stop()
		}
	} else if !p.steered || p.trail.Seq() != p.steeredSeq {
		p.steered = true
		p.steeredSeq = p.trail.Seq()
		if !p.ctrl.Steer(target) {
			p.failures++
		}
	}

	p.ctrl.Update(dt)
}

// targetIndex is FollowDistance samples back from the end of the trail,
// clamped to the trail.
func (p *Pursuit) targetIndex() int {
	return min(max(0, p.trail.Len()-p.cfg.FollowDistance), p.trail.Len()-1)
}

// Config returns the configuration in use, defaults applied.
func (p *Pursuit) Config() Config {
	return p.cfg
}

// Target is the trail point the follower is heading for.
func (p *Pursuit) Target() (world.PixelCoord, bool) {
	return p.target, p.hasTarget
}

func (p *Pursuit) Trail() *Trail {
	return p.trail
}

func (p *Pursuit) Controller() *motion.Controller {
	return p.ctrl
}

// Failures counts steering attempts that found no path.
func (p *Pursuit) Failures() int {
	return p.failures
}
