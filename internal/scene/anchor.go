package scene

import (
	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/data-ballpit/internal/spawn"
)

// AnchorObject is the resizable reference object balls spawn from. Resizes
// set a target size; Update eases the visible size toward it on a spring.
type AnchorObject struct {
	pos      spawn.Vec3
	size     float64
	velocity float64
	target   float64
	min, max float64
	spring   harmonica.Spring
}

// NewAnchorObject creates an anchor at pos with the given size, stepped at
// fps frames per second. Sizes are kept within [min, max].
func NewAnchorObject(pos spawn.Vec3, size, min, max float64, fps int, frequency, damping float64) *AnchorObject {
	return &AnchorObject{
		pos:    pos,
		size:   size,
		target: size,
		min:    min,
		max:    max,
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

func (a *AnchorObject) Position() spawn.Vec3 { return a.pos }

// Size is the current, possibly still animating, size.
func (a *AnchorObject) Size() float64 { return a.size }

// Target is the size the anchor is easing toward.
func (a *AnchorObject) Target() float64 { return a.target }

func (a *AnchorObject) Resize(delta float64) {
	t := a.target + delta
	if t < a.min {
		t = a.min
	}
	if t > a.max {
		t = a.max
	}
	a.target = t
}

// Update advances the spring by one frame.
func (a *AnchorObject) Update() {
	a.size, a.velocity = a.spring.Update(a.size, a.velocity, a.target)
}
