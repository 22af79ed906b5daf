// Package spawn plays a time series back as a paced stream of data balls.
package spawn

import "github.com/iburimskiy/data-ballpit/internal/fx"

// Vec3 is a position in scene space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Scene creates objects from named templates.
type Scene interface {
	Instantiate(template string) (Object, error)
}

// Object is a spawned visual. The sub-part lookups report false when the
// template has no such part; callers skip that piece of configuration.
type Object interface {
	fx.Destroyer
	SetPosition(p Vec3)
	Body() (Body, bool)
	Label() (Label, bool)
	Surfaces() []fx.Surface
}

// Body is the scalable part of an object.
type Body interface {
	SetScale(s float64)
}

// Label is the text part of an object.
type Label interface {
	SetText(s string)
}

// Captions shows which visualization runs and which timestep is current.
type Captions interface {
	SetVisName(s string)
	SetInfo(s string)
}

const (
	IdleVisName = "No Visualization Running"
	IdleInfo    = "-- No Info --"
)

type nopCaptions struct{}

func (nopCaptions) SetVisName(string) {}
func (nopCaptions) SetInfo(string)    {}

// Board shares one Captions surface between spawners. The most recently
// started spawner that is still running owns it. When the owner lets go,
// the previous claimant's title and info come back; with no claimants left
// the idle texts are shown.
type Board struct {
	out    Captions
	claims []claim
}

type claim struct {
	owner *Spawner
	name  string
	info  string
}

// NewBoard returns a board writing to out. out may be nil.
func NewBoard(out Captions) *Board {
	if out == nil {
		out = nopCaptions{}
	}
	return &Board{out: out}
}

// Owner returns the title of the spawner currently shown, or "".
func (b *Board) Owner() string {
	if len(b.claims) == 0 {
		return ""
	}
	return b.claims[len(b.claims)-1].name
}

func (b *Board) claim(s *Spawner, name string) {
	b.drop(s)
	b.claims = append(b.claims, claim{owner: s, name: name})
	b.out.SetVisName(name)
}

func (b *Board) setInfo(s *Spawner, text string) {
	for i := range b.claims {
		if b.claims[i].owner != s {
			continue
		}
		b.claims[i].info = text
		if i == len(b.claims)-1 {
			b.out.SetInfo(text)
		}
		return
	}
}

func (b *Board) release(s *Spawner) {
	top := len(b.claims) > 0 && b.claims[len(b.claims)-1].owner == s
	if !b.drop(s) || !top {
		return
	}
	if len(b.claims) == 0 {
		b.out.SetVisName(IdleVisName)
		b.out.SetInfo(IdleInfo)
		return
	}
	c := b.claims[len(b.claims)-1]
	b.out.SetVisName(c.name)
	if c.info == "" {
		b.out.SetInfo(IdleInfo)
	} else {
		b.out.SetInfo(c.info)
	}
}

func (b *Board) drop(s *Spawner) bool {
	for i, c := range b.claims {
		if c.owner == s {
			b.claims = append(b.claims[:i], b.claims[i+1:]...)
			return true
		}
	}
	return false
}
