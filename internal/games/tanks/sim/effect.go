package sim

import "github.com/vovakirdan/tui-tanks/internal/core"

// TransientKind distinguishes short-lived visual effects.
type TransientKind int

const (
	TransientExplosion TransientKind = iota
	TransientLabel
)

// Explosion sizes in frames.
const (
	smallExplosionFrames = 2 // projectile impact
	largeExplosionFrames = 3 // tank destroyed
)

// Transient is an explosion or floating label. Its frames and removal are
// driven by scheduler entries; it never affects collisions.
type Transient struct {
	ID     EntityID
	Kind   TransientKind
	Pos    core.Point // explosion center or label top-left
	Text   string
	Frame  int
	Frames int
	Active bool
}

// advance steps to the next frame and deactivates after the last one.
func (t *Transient) advance() {
	t.Frame++
	if t.Frame >= t.Frames {
		t.Active = false
	}
}

// Large reports whether the explosion is the tank-sized one.
func (t *Transient) Large() bool {
	return t.Frames >= largeExplosionFrames
}

func (e *Engine) newExplosion(center core.Point, frames int) *Transient {
	t := &Transient{
		ID:     e.newID(),
		Kind:   TransientExplosion,
		Pos:    center,
		Frames: frames,
		Active: true,
	}
	e.transients = append(e.transients, t)
	e.sched.Add(e.cfg.Timing.ExplosionFrame, Effect{Kind: EffectAdvanceFrame, Target: t.ID}, frames)
	return t
}

func (e *Engine) newLabel(pos core.Point, text string, duration int) *Transient {
	t := &Transient{
		ID:     e.newID(),
		Kind:   TransientLabel,
		Pos:    pos,
		Text:   text,
		Active: true,
	}
	e.transients = append(e.transients, t)
	e.sched.Add(duration, Effect{Kind: EffectExpireLabel, Target: t.ID}, 1)
	return t
}

func (e *Engine) transient(id EntityID) *Transient {
	for _, t := range e.transients {
		if t.ID == id {
			return t
		}
	}
	return nil
}
