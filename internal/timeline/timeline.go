// Package timeline runs cooperative routines that advance once per frame.
//
// Everything happens on the caller's goroutine: Tick steps each live routine
// with the frame's delta time. A routine is suspended between ticks, and its
// context is checked there, so cancellation takes effect at the next frame
// boundary and never in the middle of a step.
package timeline

import (
	"context"
	"time"
)

// Routine is one resumable unit of work. Step is called once per frame with
// the elapsed frame time and reports whether the routine has finished.
type Routine interface {
	Step(dt time.Duration) (done bool)
}

// RoutineFunc adapts a function to Routine.
type RoutineFunc func(dt time.Duration) bool

func (f RoutineFunc) Step(dt time.Duration) bool { return f(dt) }

type task struct {
	ctx    context.Context
	r      Routine
	onExit func(error)
}

// Scheduler owns the set of live routines. It is not safe for concurrent use.
type Scheduler struct {
	tasks    []*task
	incoming []*task
	elapsed  time.Duration
	ticking  bool
}

func New() *Scheduler {
	return &Scheduler{}
}

// Go schedules r. It is first stepped on the next Tick, including when Go is
// called from inside another routine's Step. onExit, if non-nil, is called
// once with nil when r finishes or with the context error when it is dropped.
func (s *Scheduler) Go(ctx context.Context, r Routine, onExit func(error)) {
	t := &task{ctx: ctx, r: r, onExit: onExit}
	if s.ticking {
		s.incoming = append(s.incoming, t)
		return
	}
	s.tasks = append(s.tasks, t)
}

// Tick advances every live routine by dt.
func (s *Scheduler) Tick(dt time.Duration) {
	s.ticking = true
	s.elapsed += dt

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if err := t.ctx.Err(); err != nil {
			t.exit(err)
			continue
		}
		if t.r.Step(dt) {
			t.exit(nil)
			continue
		}
		live = append(live, t)
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = append(live, s.incoming...)
	s.incoming = s.incoming[:0]
	s.ticking = false
}

// Len returns the number of routines still scheduled.
func (s *Scheduler) Len() int { return len(s.tasks) + len(s.incoming) }

// Elapsed returns the total time fed to Tick.
func (s *Scheduler) Elapsed() time.Duration { return s.elapsed }

func (t *task) exit(err error) {
	if t.onExit != nil {
		t.onExit(err)
	}
}

// After returns a routine that waits d of accumulated frame time and then
// calls fn. A non-positive d fires on the first step.
func After(d time.Duration, fn func()) Routine {
	var waited time.Duration
	first := true
	return RoutineFunc(func(dt time.Duration) bool {
		if !first {
			waited += dt
		}
		first = false
		if waited < d {
			return false
		}
		if fn != nil {
			fn()
		}
		return true
	})
}
