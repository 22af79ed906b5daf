package timeline

import (
	"context"
	"errors"
	"testing"
	"time"
)

const frame = time.Second / 60

func TestRoutineRunsUntilDone(t *testing.T) {
	s := New()
	steps := 0
	var exitErr error = errors.New("unset")
	s.Go(context.Background(), RoutineFunc(func(dt time.Duration) bool {
		steps++
		return steps == 3
	}), func(err error) { exitErr = err })

	for i := 0; i < 5; i++ {
		s.Tick(frame)
	}
	if steps != 3 {
		t.Fatalf("steps = %d want 3", steps)
	}
	if exitErr != nil {
		t.Fatalf("onExit err = %v want nil", exitErr)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d after completion", s.Len())
	}
	if s.Elapsed() != 5*frame {
		t.Fatalf("Elapsed = %v", s.Elapsed())
	}
}

func TestCancelledRoutineIsDroppedAtNextTick(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	var exitErr error
	s.Go(ctx, RoutineFunc(func(time.Duration) bool {
		steps++
		return false
	}), func(err error) { exitErr = err })

	s.Tick(frame)
	cancel()
	s.Tick(frame)
	s.Tick(frame)

	if steps != 1 {
		t.Fatalf("steps = %d want 1", steps)
	}
	if !errors.Is(exitErr, context.Canceled) {
		t.Fatalf("onExit err = %v", exitErr)
	}
}

func TestRoutineStartedDuringTickWaitsForNextTick(t *testing.T) {
	s := New()
	childSteps := 0
	s.Go(context.Background(), RoutineFunc(func(time.Duration) bool {
		s.Go(context.Background(), RoutineFunc(func(time.Duration) bool {
			childSteps++
			return true
		}), nil)
		return true
	}), nil)

	s.Tick(frame)
	if childSteps != 0 {
		t.Fatalf("child stepped in the tick that created it")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d want 1", s.Len())
	}
	s.Tick(frame)
	if childSteps != 1 {
		t.Fatalf("child steps = %d want 1", childSteps)
	}
}

func TestAfter(t *testing.T) {
	s := New()
	fired := 0
	s.Go(context.Background(), After(100*time.Millisecond, func() { fired++ }), nil)

	// 40ms frames: first step is t=0, then 40, 80, 120.
	for i := 0; i < 3; i++ {
		s.Tick(40 * time.Millisecond)
	}
	if fired != 0 {
		t.Fatalf("fired early")
	}
	s.Tick(40 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d want 1", fired)
	}
	s.Tick(40 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired again")
	}
}

func TestAfterZeroFiresOnFirstStep(t *testing.T) {
	s := New()
	fired := false
	s.Go(context.Background(), After(0, func() { fired = true }), nil)
	s.Tick(frame)
	if !fired {
		t.Fatalf("zero delay did not fire on first step")
	}
}
