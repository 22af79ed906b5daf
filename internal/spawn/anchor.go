package spawn

// Reference is the user-movable object that balls spawn from.
type Reference interface {
	Position() Vec3
	Size() float64
}

// Anchor tracks a reference object's position and how much it has been
// resized since the anchor was created.
type Anchor struct {
	ref     Reference
	initial float64
	offset  Vec3
}

// NewAnchor measures the reference's size once; later sizes are relative to it.
func NewAnchor(ref Reference) *Anchor {
	return &Anchor{ref: ref, initial: ref.Size()}
}

// WithOffset returns an anchor that spawns at a fixed offset from the reference.
func (a *Anchor) WithOffset(o Vec3) *Anchor {
	c := *a
	c.offset = o
	return &c
}

// Position is where items spawn.
func (a *Anchor) Position() Vec3 { return a.ref.Position().Add(a.offset) }

// InitialSize is the reference size measured at construction.
func (a *Anchor) InitialSize() float64 { return a.initial }

// ScaleFactor is current size / initial size. It is 1 when the initial size
// was not positive, since there is nothing to compare against.
func (a *Anchor) ScaleFactor() float64 {
	if a.initial <= 0 {
		return 1
	}
	return a.ref.Size() / a.initial
}
