package spawn

import (
	"context"
	"errors"
	"time"

	"github.com/iburimskiy/data-ballpit/internal/logging"
	"github.com/iburimskiy/data-ballpit/internal/timeline"
)

// ErrNoTemplate is returned by Dropper.Spawn when neither the call nor the
// config names a template.
var ErrNoTemplate = errors.New("spawn: no template")

// DropConfig describes the single balls a Dropper spawns.
type DropConfig struct {
	Template     string
	Lifetime     time.Duration
	FadeDuration time.Duration // defaults to Lifetime
	FadeTarget   float64
}

// Dropper spawns one ball at the anchor per call. It has no series and no
// run state, so calls never conflict with a running Spawner.
type Dropper struct {
	cfg     DropConfig
	sched   *timeline.Scheduler
	scene   Scene
	anchor  *Anchor
	dropped int
	live    int
}

func NewDropper(cfg DropConfig, sched *timeline.Scheduler, scene Scene, anchor *Anchor) *Dropper {
	if cfg.FadeDuration <= 0 {
		cfg.FadeDuration = cfg.Lifetime
	}
	return &Dropper{cfg: cfg, sched: sched, scene: scene, anchor: anchor}
}

// Template is the template used when Spawn is given none.
func (d *Dropper) Template() string { return d.cfg.Template }

// Dropped counts successful spawns.
func (d *Dropper) Dropped() int { return d.dropped }

// Live is the number of dropped balls not yet destroyed.
func (d *Dropper) Live() int { return d.live }

// Spawn instantiates template (or the configured one when empty) at the
// anchor, scaled by the anchor's resize factor. The ball fades and is
// destroyed after the configured lifetime unless ctx ends first.
func (d *Dropper) Spawn(ctx context.Context, template string) (Object, error) {
	if template == "" {
		template = d.cfg.Template
	}
	if template == "" {
		return nil, ErrNoTemplate
	}
	obj, err := d.scene.Instantiate(template)
	if err != nil {
		return nil, err
	}
	obj.SetPosition(d.anchor.Position())
	if body, ok := obj.Body(); ok {
		body.SetScale(d.anchor.ScaleFactor())
	}
	d.live++
	d.dropped++
	track(d.sched, ctx, obj, d.cfg.FadeDuration, d.cfg.FadeTarget, d.cfg.Lifetime, func() { d.live-- })
	logging.Debugf("dropped a %s ball (%d so far)", template, d.dropped)
	return obj, nil
}
