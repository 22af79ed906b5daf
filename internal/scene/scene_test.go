package scene

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/data-ballpit/internal/spawn"
)

func newTestScene() *Scene {
	return New(
		Template{Name: "Red", Color: [3]uint8{255, 0, 0}, Labeled: true, Materials: 2},
		Template{Name: "Plain"},
	)
}

func TestInstantiateAndParts(t *testing.T) {
	s := newTestScene()
	obj, err := s.Instantiate("Red")
	if err != nil {
		t.Fatal(err)
	}
	b := obj.(*Ball)
	if s.Len() != 1 {
		t.Fatalf("Len = %d", s.Len())
	}
	if got, ok := s.Get(b.ID); !ok || got != b {
		t.Fatalf("Get did not return the ball")
	}

	body, ok := obj.Body()
	if !ok {
		t.Fatalf("no body")
	}
	body.SetScale(0.5)
	label, ok := obj.Label()
	if !ok {
		t.Fatalf("labeled template has no label")
	}
	label.SetText("42")
	obj.SetPosition(spawn.Vec3{X: 1})

	if b.Scale() != 0.5 || b.Text() != "42" || b.Position() != (spawn.Vec3{X: 1}) {
		t.Fatalf("ball = scale %v text %q pos %v", b.Scale(), b.Text(), b.Position())
	}
	if n := len(obj.Surfaces()); n != 2 {
		t.Fatalf("surfaces = %d want 2", n)
	}
	if a := b.MaterialAlphas(); a[0] != 1 || a[1] != 0.5 {
		t.Fatalf("alphas = %v", a)
	}
	obj.Surfaces()[0].SetAlpha(0.25)
	if b.Alpha() != 0.25 {
		t.Fatalf("alpha = %v", b.Alpha())
	}
}

func TestPlainTemplateHasNoLabel(t *testing.T) {
	s := newTestScene()
	obj, err := s.Instantiate("Plain")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := obj.Label(); ok {
		t.Fatalf("plain template should not have a label")
	}
	if len(obj.Surfaces()) != 1 {
		t.Fatalf("plain template should default to one material")
	}
}

func TestUnknownTemplate(t *testing.T) {
	s := newTestScene()
	if _, err := s.Instantiate("Nope"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("err = %v", err)
	}
}

func TestDestroyAndClear(t *testing.T) {
	s := newTestScene()
	a, _ := s.Instantiate("Red")
	b, _ := s.Instantiate("Red")
	a.Destroy()
	a.Destroy()
	if s.Len() != 1 || !a.(*Ball).Destroyed() {
		t.Fatalf("Len = %d after destroy", s.Len())
	}
	s.Clear()
	if s.Len() != 0 || !b.(*Ball).Destroyed() {
		t.Fatalf("Clear left %d balls", s.Len())
	}
	// Destroying a cleared ball must not touch the new map.
	c, _ := s.Instantiate("Red")
	b.Destroy()
	if _, ok := s.Get(c.(*Ball).ID); !ok {
		t.Fatalf("late destroy removed another ball")
	}
}

func TestBallsOrderAndRise(t *testing.T) {
	s := newTestScene()
	near, _ := s.Instantiate("Red")
	far, _ := s.Instantiate("Red")
	near.SetPosition(spawn.Vec3{Z: -1})
	far.SetPosition(spawn.Vec3{Z: 2})

	balls := s.Balls()
	if balls[0] != far || balls[1] != near {
		t.Fatalf("balls not back to front")
	}
	s.Rise(500*time.Millisecond, 2)
	if y := far.(*Ball).Position().Y; math.Abs(y-1) > 1e-9 {
		t.Fatalf("rise y = %v want 1", y)
	}
}

func TestProjectAndPick(t *testing.T) {
	cam := Camera{CenterX: 100, CenterY: 100, Focal: 5, PixelsPerUnit: 10, BallRadius: 1}
	x, y, k, ok := cam.Project(spawn.Vec3{X: 1, Y: 1, Z: 0})
	if !ok || x != 110 || y != 90 || k != 1 {
		t.Fatalf("Project = %v %v %v %v", x, y, k, ok)
	}
	if _, _, _, ok := cam.Project(spawn.Vec3{Z: -5}); ok {
		t.Fatalf("point at camera should not project")
	}

	s := newTestScene()
	back, _ := s.Instantiate("Red")
	front, _ := s.Instantiate("Red")
	back.(*Ball).scale, front.(*Ball).scale = 1, 1
	back.SetPosition(spawn.Vec3{Z: 5})
	front.SetPosition(spawn.Vec3{Z: 0})

	got, ok := s.Pick(100, 100, cam)
	if !ok || got != front {
		t.Fatalf("Pick did not return the front ball")
	}
	if _, ok := s.Pick(150, 150, cam); ok {
		t.Fatalf("Pick hit empty space")
	}
}
