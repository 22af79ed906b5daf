package scene

import (
	"math"
	"testing"

	"github.com/iburimskiy/data-ballpit/internal/spawn"
)

func TestAnchorObjectEasesToTarget(t *testing.T) {
	a := NewAnchorObject(spawn.Vec3{Y: -1}, 1, 0.5, 3, 60, 6, 1)
	anchor := spawn.NewAnchor(a)

	a.Resize(1)
	if a.Target() != 2 {
		t.Fatalf("target = %v", a.Target())
	}
	if a.Size() != 1 {
		t.Fatalf("size moved before Update")
	}
	a.Update()
	if a.Size() <= 1 || a.Size() >= 2 {
		t.Fatalf("size after one frame = %v", a.Size())
	}
	for i := 0; i < 600; i++ {
		a.Update()
	}
	if math.Abs(a.Size()-2) > 1e-3 {
		t.Fatalf("size did not settle: %v", a.Size())
	}
	if math.Abs(anchor.ScaleFactor()-2) > 1e-3 {
		t.Fatalf("scale factor = %v", anchor.ScaleFactor())
	}
	if anchor.Position() != (spawn.Vec3{Y: -1}) {
		t.Fatalf("position = %v", anchor.Position())
	}
}

func TestAnchorObjectClampsTarget(t *testing.T) {
	a := NewAnchorObject(spawn.Vec3{}, 1, 0.5, 3, 60, 6, 1)
	a.Resize(10)
	if a.Target() != 3 {
		t.Fatalf("target = %v want 3", a.Target())
	}
	a.Resize(-10)
	if a.Target() != 0.5 {
		t.Fatalf("target = %v want 0.5", a.Target())
	}
}
