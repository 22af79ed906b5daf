package fx

import "time"

// Destroyer is an object that can be removed from the scene.
type Destroyer interface {
	Destroy()
}

// Lifetime destroys its target once delay of frame time has accumulated.
// Like Fade, its first step is t=0, so a fade and a lifetime of the same
// length started together finish on the same frame. Dropping the routine before then (by cancelling its context) means the
// target is never touched.
type Lifetime struct {
	target    Destroyer
	delay     time.Duration
	waited    time.Duration
	onDestroy func()
	started   bool
	fired     bool
}

// NewLifetime schedules target for destruction after delay. onDestroy, if
// non-nil, runs right after the target is destroyed.
func NewLifetime(target Destroyer, delay time.Duration, onDestroy func()) *Lifetime {
	return &Lifetime{target: target, delay: delay, onDestroy: onDestroy}
}

// Remaining is the time left before destruction.
func (l *Lifetime) Remaining() time.Duration {
	if l.fired || l.waited >= l.delay {
		return 0
	}
	return l.delay - l.waited
}

func (l *Lifetime) Step(dt time.Duration) bool {
	if l.fired {
		return true
	}
	if l.started {
		l.waited += dt
	}
	l.started = true
	if l.waited < l.delay {
		return false
	}
	l.fired = true
	l.target.Destroy()
	if l.onDestroy != nil {
		l.onDestroy()
	}
	return true
}
