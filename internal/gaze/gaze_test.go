package gaze

import (
	"context"
	"testing"
	"time"

	"github.com/iburimskiy/data-ballpit/internal/timeline"
)

type panel struct {
	visible bool
	changes int
}

func (p *panel) SetVisible(v bool) { p.visible = v; p.changes++ }

func TestExitHidesAfterDelay(t *testing.T) {
	s := timeline.New()
	p := &panel{}
	h := NewHandler(p, s, 200*time.Millisecond)

	h.FocusEnter()
	if !p.visible || !h.Focused() {
		t.Fatalf("panel not shown on enter")
	}
	h.FocusExit(context.Background())
	if !p.visible {
		t.Fatalf("panel hidden before delay")
	}
	s.Tick(100 * time.Millisecond)
	s.Tick(100 * time.Millisecond)
	if !p.visible {
		t.Fatalf("panel hidden at 100ms")
	}
	s.Tick(100 * time.Millisecond)
	if p.visible {
		t.Fatalf("panel still visible after delay")
	}
}

func TestZeroDelayHidesNextFrame(t *testing.T) {
	s := timeline.New()
	p := &panel{}
	h := NewHandler(p, s, 0)
	h.FocusEnter()
	h.FocusExit(context.Background())
	if !p.visible {
		t.Fatalf("hidden synchronously")
	}
	s.Tick(time.Second / 60)
	if p.visible {
		t.Fatalf("not hidden on next frame")
	}
}

func TestReenterCancelsPendingHide(t *testing.T) {
	s := timeline.New()
	p := &panel{}
	h := NewHandler(p, s, 100*time.Millisecond)

	h.FocusEnter()
	h.FocusExit(context.Background())
	s.Tick(50 * time.Millisecond)
	h.FocusEnter()
	for i := 0; i < 5; i++ {
		s.Tick(50 * time.Millisecond)
	}
	if !p.visible {
		t.Fatalf("stale hide fired after re-enter")
	}
	if s.Len() != 0 {
		t.Fatalf("%d routines left", s.Len())
	}
}
