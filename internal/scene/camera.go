package scene

import "github.com/iburimskiy/data-ballpit/internal/spawn"

// Camera is a pinhole projection looking down -Z from Focal units in front
// of the origin; +Y is up in scene space and down on screen.
type Camera struct {
	CenterX, CenterY float64
	Focal            float64
	PixelsPerUnit    float64
	BallRadius       float64
}

// Project maps p to screen space. k is the perspective factor; ok is false
// for points at or behind the camera.
func (c Camera) Project(p spawn.Vec3) (x, y, k float64, ok bool) {
	depth := c.Focal + p.Z
	if depth <= 0 {
		return 0, 0, 0, false
	}
	k = c.Focal / depth
	x = c.CenterX + p.X*k*c.PixelsPerUnit
	y = c.CenterY - p.Y*k*c.PixelsPerUnit
	return x, y, k, true
}

// ProjectBall returns the screen centre and radius of b.
func (c Camera) ProjectBall(b *Ball) (x, y, r float64, ok bool) {
	x, y, k, ok := c.Project(b.pos)
	if !ok {
		return 0, 0, 0, false
	}
	r = c.BallRadius * b.Template.Radius * b.scale * k * c.PixelsPerUnit
	return x, y, r, true
}
