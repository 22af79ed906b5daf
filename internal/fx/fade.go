// Package fx holds the per-item timed effects: alpha fades and timed destruction.
package fx

import "time"

// Surface is anything with an alpha channel, such as one material of a ball.
type Surface interface {
	Alpha() float64
	SetAlpha(a float64)
}

// Fade linearly moves the alpha of a set of surfaces to a target over a
// duration of accumulated frame time.
type Fade struct {
	surfaces []Surface
	start    []float64
	target   float64
	duration time.Duration
	elapsed  time.Duration
	started  bool
}

// NewFade captures the current alpha of each surface as its starting point.
func NewFade(surfaces []Surface, duration time.Duration, target float64) *Fade {
	f := &Fade{
		surfaces: surfaces,
		start:    make([]float64, len(surfaces)),
		target:   clamp01(target),
		duration: duration,
	}
	for i, s := range surfaces {
		f.start[i] = s.Alpha()
	}
	return f
}

// Progress returns the interpolation parameter for the current elapsed time.
func (f *Fade) Progress() float64 {
	if f.duration <= 0 {
		return 1
	}
	return clamp01(float64(f.elapsed) / float64(f.duration))
}

// Step applies the alpha for the current elapsed time and then advances it by
// dt. The first step applies t=0. Once elapsed reaches the duration the
// target alpha is written and the fade reports done.
func (f *Fade) Step(dt time.Duration) bool {
	if len(f.surfaces) == 0 {
		return true
	}
	if f.started {
		f.elapsed += dt
	}
	f.started = true

	p := f.Progress()
	for i, s := range f.surfaces {
		s.SetAlpha(lerp(f.start[i], f.target, p))
	}
	return f.elapsed >= f.duration
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
