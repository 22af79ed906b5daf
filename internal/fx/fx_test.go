package fx

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/data-ballpit/internal/timeline"
)

type material struct {
	alpha float64
	sets  int
}

func (m *material) Alpha() float64     { return m.alpha }
func (m *material) SetAlpha(a float64) { m.alpha = a; m.sets++ }

type ball struct{ destroyed int }

func (b *ball) Destroy() { b.destroyed++ }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFadeStartsAtCapturedAlphaAndEndsAtTarget(t *testing.T) {
	fill := &material{alpha: 1}
	rim := &material{alpha: 0.5}
	f := NewFade([]Surface{fill, rim}, time.Second, 0)

	// The captured start must not follow later outside changes.
	fill.alpha = 0.9

	if done := f.Step(100 * time.Millisecond); done {
		t.Fatalf("fade finished on first step")
	}
	if !near(fill.alpha, 1) || !near(rim.alpha, 0.5) {
		t.Fatalf("t=0 alpha = %v,%v want 1,0.5", fill.alpha, rim.alpha)
	}

	f.Step(500 * time.Millisecond)
	if !near(fill.alpha, 0.5) || !near(rim.alpha, 0.25) {
		t.Fatalf("t=0.5 alpha = %v,%v", fill.alpha, rim.alpha)
	}

	// Overshoot: elapsed becomes 1.2s, parameter is clamped.
	if done := f.Step(700 * time.Millisecond); !done {
		t.Fatalf("fade not done after duration")
	}
	if fill.alpha != 0 || rim.alpha != 0 {
		t.Fatalf("final alpha = %v,%v want 0", fill.alpha, rim.alpha)
	}
	if f.Progress() != 1 {
		t.Fatalf("progress = %v", f.Progress())
	}
}

func TestFadeAlphaNeverIncreasesTowardLowerTarget(t *testing.T) {
	m := &material{alpha: 0.8}
	f := NewFade([]Surface{m}, 250*time.Millisecond, 0.2)
	prev := m.alpha
	for i := 0; i < 30; i++ {
		done := f.Step(time.Second / 60)
		if m.alpha > prev+1e-12 {
			t.Fatalf("alpha rose from %v to %v", prev, m.alpha)
		}
		prev = m.alpha
		if done {
			break
		}
	}
	if !near(m.alpha, 0.2) {
		t.Fatalf("final alpha = %v want 0.2", m.alpha)
	}
}

func TestFadeWithoutSurfacesIsNoop(t *testing.T) {
	f := NewFade(nil, time.Second, 0)
	if !f.Step(time.Millisecond) {
		t.Fatalf("empty fade should finish immediately")
	}
}

func TestFadeTargetIsClamped(t *testing.T) {
	m := &material{alpha: 0.5}
	f := NewFade([]Surface{m}, 0, 3)
	if !f.Step(0) {
		t.Fatalf("zero-duration fade should finish on first step")
	}
	if m.alpha != 1 {
		t.Fatalf("alpha = %v want clamped 1", m.alpha)
	}
}

func TestLifetimeDestroysOnceAfterDelay(t *testing.T) {
	b := &ball{}
	callbacks := 0
	l := NewLifetime(b, 300*time.Millisecond, func() { callbacks++ })

	// The first step is t=0.
	for i := 0; i < 3; i++ {
		if l.Step(100 * time.Millisecond) {
			t.Fatalf("destroyed before delay (step %d)", i)
		}
	}
	if l.Remaining() != 100*time.Millisecond {
		t.Fatalf("Remaining = %v", l.Remaining())
	}
	if !l.Step(100 * time.Millisecond) {
		t.Fatalf("not destroyed at delay")
	}
	l.Step(100 * time.Millisecond)
	if b.destroyed != 1 || callbacks != 1 {
		t.Fatalf("destroyed=%d callbacks=%d want 1,1", b.destroyed, callbacks)
	}
}

func TestCancelledLifetimeNeverDestroys(t *testing.T) {
	s := timeline.New()
	b := &ball{}
	ctx, cancel := context.WithCancel(context.Background())
	s.Go(ctx, NewLifetime(b, 50*time.Millisecond, nil), nil)

	s.Tick(10 * time.Millisecond)
	cancel()
	for i := 0; i < 10; i++ {
		s.Tick(10 * time.Millisecond)
	}
	if b.destroyed != 0 {
		t.Fatalf("cancelled lifetime destroyed its target")
	}
	if s.Len() != 0 {
		t.Fatalf("cancelled lifetime still scheduled")
	}
}

func TestFadeReachesTargetBeforeEqualLifetimeFires(t *testing.T) {
	s := timeline.New()
	m := &material{alpha: 1}
	var alphaAtDestroy float64
	destroyed := 0
	ctx := context.Background()
	s.Go(ctx, NewFade([]Surface{m}, 500*time.Millisecond, 0.25), nil)
	s.Go(ctx, NewLifetime(&ball{}, 500*time.Millisecond, func() {
		destroyed++
		alphaAtDestroy = m.alpha
	}), nil)

	for i := 0; i < 60 && destroyed == 0; i++ {
		s.Tick(time.Second / 60)
	}
	if destroyed != 1 {
		t.Fatalf("lifetime never fired")
	}
	if !near(alphaAtDestroy, 0.25) {
		t.Fatalf("alpha at destroy = %v want 0.25", alphaAtDestroy)
	}
	if s.Len() != 0 {
		t.Fatalf("%d routines left", s.Len())
	}
}

func TestZeroLifetimeFiresOnFirstStep(t *testing.T) {
	b := &ball{}
	if !NewLifetime(b, 0, nil).Step(time.Second) || b.destroyed != 1 {
		t.Fatalf("zero delay should destroy on the first step")
	}
}
