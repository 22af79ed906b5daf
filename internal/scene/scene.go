// Package scene is the in-memory scene graph the spawner instantiates into.
package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iburimskiy/data-ballpit/internal/fx"
	"github.com/iburimskiy/data-ballpit/internal/spawn"
)

// ErrUnknownTemplate is returned by Instantiate for unregistered names.
var ErrUnknownTemplate = errors.New("scene: unknown template")

// Template describes a kind of ball.
type Template struct {
	Name      string
	Color     [3]uint8
	Radius    float64 // multiplier on the base ball radius
	Labeled   bool
	Materials int
}

// Scene holds the live balls.
type Scene struct {
	templates map[string]Template
	balls     map[uuid.UUID]*Ball
	order     uint64
}

func New(templates ...Template) *Scene {
	s := &Scene{
		templates: make(map[string]Template, len(templates)),
		balls:     make(map[uuid.UUID]*Ball),
	}
	for _, t := range templates {
		s.Register(t)
	}
	return s
}

// Register adds or replaces a template.
func (s *Scene) Register(t Template) {
	if t.Materials < 1 {
		t.Materials = 1
	}
	if t.Radius <= 0 {
		t.Radius = 1
	}
	s.templates[t.Name] = t
}

// Instantiate creates a ball from a registered template at the origin.
func (s *Scene) Instantiate(name string) (spawn.Object, error) {
	t, ok := s.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	s.order++
	b := &Ball{
		ID:       uuid.New(),
		Template: t,
		scale:    1,
		seq:      s.order,
		scene:    s,
	}
	b.materials = make([]*Material, t.Materials)
	for i := range b.materials {
		// Inner materials are drawn more transparent than the shell.
		b.materials[i] = &Material{alpha: 1 / float64(i+1)}
	}
	if t.Labeled {
		b.label = &Text{}
	}
	s.balls[b.ID] = b
	return b, nil
}

// Len returns the number of live balls.
func (s *Scene) Len() int { return len(s.balls) }

// Get returns a live ball by id.
func (s *Scene) Get(id uuid.UUID) (*Ball, bool) {
	b, ok := s.balls[id]
	return b, ok
}

// Balls returns live balls back to front, oldest first on ties.
func (s *Scene) Balls() []*Ball {
	out := make([]*Ball, 0, len(s.balls))
	for _, b := range s.balls {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].pos.Z != out[j].pos.Z {
			return out[i].pos.Z > out[j].pos.Z
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Rise drifts every ball upward; it is display motion only.
func (s *Scene) Rise(dt time.Duration, speed float64) {
	dy := speed * dt.Seconds()
	for _, b := range s.balls {
		b.pos.Y += dy
	}
}

// Clear destroys every ball.
func (s *Scene) Clear() {
	for _, b := range s.balls {
		b.destroyed = true
	}
	s.balls = make(map[uuid.UUID]*Ball)
}

// Pick returns the front-most ball whose projected disc contains (x, y).
func (s *Scene) Pick(x, y float64, cam Camera) (*Ball, bool) {
	balls := s.Balls()
	for i := len(balls) - 1; i >= 0; i-- {
		b := balls[i]
		px, py, r, ok := cam.ProjectBall(b)
		if !ok {
			continue
		}
		if math.Hypot(x-px, y-py) <= r {
			return b, true
		}
	}
	return nil, false
}

// Ball is one spawned data ball.
type Ball struct {
	ID       uuid.UUID
	Template Template

	pos       spawn.Vec3
	scale     float64
	label     *Text
	materials []*Material
	seq       uint64
	destroyed bool
	scene     *Scene
}

func (b *Ball) SetPosition(p spawn.Vec3) { b.pos = p }
func (b *Ball) Position() spawn.Vec3     { return b.pos }
func (b *Ball) Scale() float64           { return b.scale }
func (b *Ball) Destroyed() bool          { return b.destroyed }

// Destroy removes the ball from its scene. Repeated calls are harmless.
func (b *Ball) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	delete(b.scene.balls, b.ID)
}

// Body returns the ball itself; every ball can be scaled.
func (b *Ball) Body() (spawn.Body, bool) { return ballBody{b}, true }

// Label returns the text part for labeled templates.
func (b *Ball) Label() (spawn.Label, bool) {
	if b.label == nil {
		return nil, false
	}
	return b.label, true
}

// Text returns the label text, empty for unlabeled balls.
func (b *Ball) Text() string {
	if b.label == nil {
		return ""
	}
	return b.label.s
}

func (b *Ball) Surfaces() []fx.Surface {
	out := make([]fx.Surface, len(b.materials))
	for i, m := range b.materials {
		out[i] = m
	}
	return out
}

// Alpha is the opacity of the outer material.
func (b *Ball) Alpha() float64 { return b.materials[0].alpha }

// MaterialAlphas lists every material's opacity, outer first.
func (b *Ball) MaterialAlphas() []float64 {
	out := make([]float64, len(b.materials))
	for i, m := range b.materials {
		out[i] = m.alpha
	}
	return out
}

type ballBody struct{ b *Ball }

func (bb ballBody) SetScale(s float64) { bb.b.scale = s }

// Text is a ball's label.
type Text struct{ s string }

func (t *Text) SetText(s string) { t.s = s }

// Material is one alpha-blended surface of a ball.
type Material struct{ alpha float64 }

func (m *Material) Alpha() float64     { return m.alpha }
func (m *Material) SetAlpha(a float64) { m.alpha = a }
