package game

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/data-ballpit/internal/config"
	"github.com/iburimskiy/data-ballpit/internal/spawn"
	"github.com/iburimskiy/data-ballpit/internal/timeline"
)

// flash is a flag that switches itself off after a while; buttons use it for
// their click and command indicators.
type flash struct {
	on     bool
	cancel context.CancelFunc
}

func (f *flash) trigger(ctx context.Context, sched *timeline.Scheduler, d time.Duration) {
	if f.cancel != nil {
		f.cancel()
	}
	tctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.on = true
	sched.Go(tctx, timeline.After(d, func() { f.on = false }), func(error) { cancel() })
}

type button struct {
	x, y, w, h int
	text       string

	hovered   bool
	pressed   bool
	active    bool
	showState bool

	clicks  int
	clicked flash
	voice   flash
	command string
}

func newButton(index int, text string) *button {
	return &button{
		x:    config.ButtonX,
		y:    config.ButtonY + index*(config.ButtonHeight+config.ButtonGap),
		w:    config.ButtonWidth,
		h:    config.ButtonHeight,
		text: text,
	}
}

func (b *button) contains(x, y int) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

// state names the interaction state the way the button's own status line
// reports it.
func (b *button) state() string {
	switch {
	case b.pressed:
		return "Pressed"
	case b.hovered:
		return "Focus"
	}
	return "Default"
}

func (b *button) draw(screen *ebiten.Image) {
	var bgColor color.Color
	switch {
	case b.pressed:
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case b.active:
		bgColor = color.RGBA{R: 70, G: 130, B: 90, A: 255}
	case b.hovered:
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, borderColor, false)

	ebitenutil.DebugPrintAt(screen, b.text, b.x+8, b.y+4)
	if b.showState {
		ebitenutil.DebugPrintAt(screen, "State: "+b.state(), b.x+8, b.y+20)
	}

	status := ""
	if b.clicked.on {
		status = fmt.Sprintf("Clicked! (%d)", b.clicks)
	}
	if b.voice.on {
		status = "Command: " + b.command
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, b.x+8, b.y+b.h-18)
	}
}

// captionPanel shows which visualization runs and its current timestep.
type captionPanel struct {
	visName string
	info    string
}

func newCaptionPanel() *captionPanel {
	return &captionPanel{visName: spawn.IdleVisName, info: spawn.IdleInfo}
}

func (c *captionPanel) SetVisName(s string) { c.visName = s }
func (c *captionPanel) SetInfo(s string)    { c.info = s }

func (c *captionPanel) draw(screen *ebiten.Image) {
	x := config.WindowWidth - 260
	y := 12
	vector.DrawFilledRect(screen, float32(x-8), float32(y-4), 248, 40, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	ebitenutil.DebugPrintAt(screen, c.visName, x, y)
	ebitenutil.DebugPrintAt(screen, c.info, x, y+16)
}

// infoPanel describes the ball under the cursor.
type infoPanel struct {
	visible bool
	lines   []string
}

func (p *infoPanel) SetVisible(v bool) { p.visible = v }

func (p *infoPanel) describe(it spawn.Item) {
	p.lines = []string{
		it.Series,
		"Step:  " + it.Timestep,
		fmt.Sprintf("Value: %d", it.Value),
		fmt.Sprintf("Norm:  %.2f", it.Norm),
	}
}

func (p *infoPanel) draw(screen *ebiten.Image, x, y int) {
	if !p.visible || len(p.lines) == 0 {
		return
	}
	w, h := 140, 16*len(p.lines)+8
	x += 16
	if x+w > config.WindowWidth {
		x = config.WindowWidth - w
	}
	if y+h > config.WindowHeight {
		y = config.WindowHeight - h
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, color.RGBA{R: 100, G: 110, B: 130, A: 255}, false)
	for i, l := range p.lines {
		ebitenutil.DebugPrintAt(screen, l, x+6, y+4+16*i)
	}
}
