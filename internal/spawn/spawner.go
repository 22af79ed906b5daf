package spawn

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/iburimskiy/data-ballpit/internal/fx"
	"github.com/iburimskiy/data-ballpit/internal/logging"
	"github.com/iburimskiy/data-ballpit/internal/normalize"
	"github.com/iburimskiy/data-ballpit/internal/series"
	"github.com/iburimskiy/data-ballpit/internal/timeline"
)

// ErrRunning is returned when a spawner is asked to start or change its data
// while a run is in progress.
var ErrRunning = errors.New("spawn: already running")

// State of a Spawner.
type State int

const (
	Idle State = iota
	Running
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Config controls pacing and item appearance.
type Config struct {
	Title        string
	ItemDelay    time.Duration // after each dataset within a timestep
	StepDelay    time.Duration // after each timestep
	Lifetime     time.Duration // spawn to destruction
	FadeDuration time.Duration // defaults to Lifetime
	FadeTarget   float64
	Policy       normalize.Policy
	Templates    Templates
}

// Item describes one spawned ball, after it has been fully configured.
type Item struct {
	Series   string
	Timestep string
	Step     int
	Value    int
	Norm     float64
	Scale    float64
	Object   Object
}

// Spawner plays one time series back as data balls. At most one run is
// active at a time; it must be driven from the scheduler's goroutine.
type Spawner struct {
	cfg      Config
	sched    *timeline.Scheduler
	scene    Scene
	anchor   *Anchor
	captions *Board
	data     *series.TimeSeries

	state   State
	cur     *run
	cancel  context.CancelFunc
	spawned int
	live    int
	onSpawn func(Item)
}

// New wires a spawner to its collaborators. Spawners showing their progress
// on the same panel must share one board. board may be nil.
func New(cfg Config, sched *timeline.Scheduler, scene Scene, anchor *Anchor, board *Board) *Spawner {
	if board == nil {
		board = NewBoard(nil)
	}
	if cfg.FadeDuration <= 0 {
		cfg.FadeDuration = cfg.Lifetime
	}
	return &Spawner{cfg: cfg, sched: sched, scene: scene, anchor: anchor, captions: board}
}

// Title is the visualization name shown while running.
func (s *Spawner) Title() string { return s.cfg.Title }

func (s *Spawner) State() State { return s.state }

// Policy returns the normalization policy used for the next run.
func (s *Spawner) Policy() normalize.Policy { return s.cfg.Policy }

// Data returns the loaded series, possibly nil.
func (s *Spawner) Data() *series.TimeSeries { return s.data }

// Spawned is the number of items spawned by the current or last run.
func (s *Spawner) Spawned() int { return s.spawned }

// Live is the number of spawned items not yet destroyed.
func (s *Spawner) Live() int { return s.live }

// OnSpawn registers fn to be called after each item is configured.
func (s *Spawner) OnSpawn(fn func(Item)) { s.onSpawn = fn }

// Load replaces the series. A nil series makes every run a no-op.
func (s *Spawner) Load(ts *series.TimeSeries) error {
	if s.state == Running {
		return ErrRunning
	}
	s.data = ts
	return nil
}

// SetPolicy changes the normalization policy for subsequent runs.
func (s *Spawner) SetPolicy(p normalize.Policy) error {
	if s.state == Running {
		return ErrRunning
	}
	s.cfg.Policy = p
	return nil
}

// Start begins a run. Items spawned by the run live until their lifetime
// ends or ctx is cancelled, whichever comes first; cancelling the run itself
// leaves them alone.
func (s *Spawner) Start(ctx context.Context) error {
	if s.state == Running {
		return ErrRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	r := &run{
		s:      s,
		owner:  ctx,
		data:   s.data,
		ranges: normalize.Ranges(s.data, s.cfg.Policy),
	}
	s.state = Running
	s.cur = r
	s.cancel = cancel
	s.spawned = 0
	s.captions.claim(s, s.cfg.Title)

	if s.data.Empty() {
		logging.Infof("%s: no data loaded, nothing to spawn", s.cfg.Title)
	} else {
		logging.Debugf("%s: starting %d timesteps x %d datasets (%s)",
			s.cfg.Title, s.data.Steps(), len(s.data.Datasets), s.cfg.Policy)
	}
	s.sched.Go(runCtx, r, func(err error) { s.finish(r, err) })
	return nil
}

// Cancel stops the current run before its next item. It reports whether a
// run was active.
func (s *Spawner) Cancel() bool {
	if s.state != Running {
		return false
	}
	s.cancel()
	s.cur = nil
	s.cancel = nil
	s.state = Cancelled
	s.resetCaptions()
	logging.Infof("%s: cancelled after %d items", s.cfg.Title, s.spawned)
	return true
}

// Toggle cancels a running spawner or starts an idle one.
func (s *Spawner) Toggle(ctx context.Context) error {
	if s.Cancel() {
		return nil
	}
	return s.Start(ctx)
}

func (s *Spawner) finish(r *run, err error) {
	if s.cur != r {
		return
	}
	s.cancel()
	s.cur = nil
	s.cancel = nil
	if err != nil {
		s.state = Cancelled
	} else {
		s.state = Idle
		logging.Infof("%s: done spawning (%d items)", s.cfg.Title, s.spawned)
	}
	s.resetCaptions()
}

func (s *Spawner) resetCaptions() {
	s.captions.release(s)
}

func (s *Spawner) track(owner context.Context, obj Object) {
	s.live++
	track(s.sched, owner, obj, s.cfg.FadeDuration, s.cfg.FadeTarget, s.cfg.Lifetime, func() { s.live-- })
}

// track hands a configured object to its fade and lifetime routines. Both
// share a context that ends when the lifetime fires or the owner goes away.
// done runs once either way.
func track(sched *timeline.Scheduler, owner context.Context, obj Object,
	fade time.Duration, target float64, lifetime time.Duration, done func()) {
	ctx, cancel := context.WithCancel(owner)
	sched.Go(ctx, fx.NewFade(obj.Surfaces(), fade, target), nil)
	sched.Go(ctx, fx.NewLifetime(obj, lifetime, nil), func(error) {
		done()
		cancel()
	})
}

// run is the state of one pass over the series. Step resumes where the last
// pacing wait left off.
type run struct {
	s      *Spawner
	owner  context.Context
	data   *series.TimeSeries
	ranges []normalize.Range

	step    int
	dataset int
	wait    time.Duration
	started bool
}

func (r *run) Step(dt time.Duration) bool {
	if r.started {
		r.wait -= dt
	}
	r.started = true

	for r.wait <= 0 {
		if r.data.Empty() || r.step >= r.data.Steps() {
			return true
		}
		if r.dataset < len(r.data.Datasets) {
			r.spawn(r.step, r.dataset)
			r.dataset++
			r.wait += r.s.cfg.ItemDelay
			continue
		}
		r.s.captions.setInfo(r.s, r.data.Labels[r.step])
		r.dataset = 0
		r.step++
		r.wait += r.s.cfg.StepDelay
	}
	return false
}

func (r *run) spawn(step, di int) {
	s := r.s
	ds := r.data.Datasets[di]
	v, ok := ds.Value(step)
	if !ok {
		logging.Debugf("%s: %q has no value for %q", s.cfg.Title, ds.Label, r.data.Labels[step])
		return
	}
	tmpl, ok := s.cfg.Templates.Resolve(ds.Label)
	if !ok {
		logging.Debugf("%s: no template for %q, skipping", s.cfg.Title, ds.Label)
		return
	}
	norm := r.ranges[di].Normalize(v)
	scale := norm * s.anchor.ScaleFactor()
	if scale <= 0 {
		return
	}

	obj, err := s.scene.Instantiate(tmpl)
	if err != nil {
		logging.Warnf("%s: instantiate %q: %v", s.cfg.Title, tmpl, err)
		return
	}
	obj.SetPosition(s.anchor.Position())
	if body, ok := obj.Body(); ok {
		body.SetScale(scale)
	}
	if label, ok := obj.Label(); ok {
		label.SetText(strconv.Itoa(v))
	}
	s.track(r.owner, obj)
	s.spawned++

	if s.onSpawn != nil {
		s.onSpawn(Item{
			Series:   ds.Label,
			Timestep: r.data.Labels[step],
			Step:     step,
			Value:    v,
			Norm:     norm,
			Scale:    scale,
			Object:   obj,
		})
	}
}
