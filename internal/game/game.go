// Package game hosts the ball pit in an ebiten window: buttons start and stop
// visualizations, balls are drawn in a simple perspective view.
package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/data-ballpit/internal/config"
	"github.com/iburimskiy/data-ballpit/internal/gaze"
	"github.com/iburimskiy/data-ballpit/internal/logging"
	"github.com/iburimskiy/data-ballpit/internal/normalize"
	"github.com/iburimskiy/data-ballpit/internal/scene"
	"github.com/iburimskiy/data-ballpit/internal/series"
	"github.com/iburimskiy/data-ballpit/internal/spawn"
	"github.com/iburimskiy/data-ballpit/internal/timeline"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type vis struct {
	spawner *spawn.Spawner
	button  *button
	started time.Duration
}

type Game struct {
	settings config.Settings
	policy   normalize.Policy

	// root lives as long as the game; gen is replaced on every clear and
	// owns runs and ball lifetimes.
	root    context.Context
	gen     context.Context
	stopGen context.CancelFunc

	sched     *timeline.Scheduler
	scene     *scene.Scene
	cam       scene.Camera
	anchorObj *scene.AnchorObject
	anchor    *spawn.Anchor

	visuals   []*vis
	openBtn   *button
	policyBtn *button
	dropBtn   *button
	captions  *captionPanel
	board     *spawn.Board
	dropper   *spawn.Dropper
	info      *infoPanel
	gaze      *gaze.Handler
	items     map[uuid.UUID]spawn.Item
	focused   *scene.Ball

	audio *player

	colorPhase float64
	lastErr    error
	closed     bool
}

// NewGame builds the scene and one spawner per configured visualization.
func NewGame(ctx context.Context, s config.Settings) (*Game, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		settings: s,
		policy:   s.PolicyValue(),
		root:     ctx,
		sched:    timeline.New(),
		cam: scene.Camera{
			CenterX:       config.WindowWidth/2 + 80,
			CenterY:       config.WindowHeight / 2,
			Focal:         config.FocalLength,
			PixelsPerUnit: config.WorldScale,
			BallRadius:    config.BallRadius,
		},
		captions: newCaptionPanel(),
		info:     &infoPanel{},
		items:    map[uuid.UUID]spawn.Item{},
	}
	g.gen, g.stopGen = context.WithCancel(ctx)
	g.board = spawn.NewBoard(g.captions)

	var templates []scene.Template
	for name, t := range s.Templates {
		rgb, _ := config.ParseColor(t.Color)
		templates = append(templates, scene.Template{
			Name:      name,
			Color:     rgb,
			Radius:    t.Radius,
			Labeled:   t.Labeled,
			Materials: t.Materials,
		})
	}
	g.scene = scene.New(templates...)

	pos := spawn.Vec3{X: s.Anchor[0], Y: s.Anchor[1], Z: s.Anchor[2]}
	g.anchorObj = scene.NewAnchorObject(pos, 1, config.AnchorMinSize, config.AnchorMaxSize,
		config.TPS, config.SpringFrequency, config.SpringDamping)
	g.anchor = spawn.NewAnchor(g.anchorObj).
		WithOffset(spawn.Vec3{X: s.AnchorOffset[0], Y: s.AnchorOffset[1], Z: s.AnchorOffset[2]})

	g.gaze = gaze.NewHandler(g.info, g.sched, s.FocusExitDelay.D())
	g.dropper = spawn.NewDropper(spawn.DropConfig{
		Template:   s.Drop.Template,
		Lifetime:   s.Drop.Lifetime.D(),
		FadeTarget: s.Drop.FadeTarget,
	}, g.sched, g.scene, g.anchor)
	g.audio = newPlayer(s)

	for _, v := range s.Visualizations {
		g.addVisualization(v.Title, v, loadSeries(s.DataPath(v.File)))
	}
	g.openBtn = newButton(0, "Open Dataset")
	g.policyBtn = newButton(0, "")
	g.dropBtn = newButton(0, "Spawn Ball")
	g.dropBtn.showState = true
	g.dropBtn.h += config.ButtonStateHeight
	g.layoutButtons()
	return g, nil
}

// loadSeries reads a dataset file; a missing or broken file leaves the
// visualization without data rather than failing startup.
func loadSeries(path string) *series.TimeSeries {
	ts, err := series.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Warnf("no dataset at %s, visualization will be empty", path)
		} else {
			logging.Errorf("%v", err)
		}
		return nil
	}
	if err := ts.Validate(); err != nil {
		logging.Warnf("%s: %v", path, err)
	}
	logging.Infof("Loaded data for %s", strings.Join(ts.DatasetLabels(), ", "))
	return ts
}

func (g *Game) defaultVis() config.Visualization {
	return g.settings.Visualizations[0]
}

func (g *Game) addVisualization(title string, v config.Visualization, ts *series.TimeSeries) {
	sp := spawn.New(spawn.Config{
		Title:      title,
		ItemDelay:  g.settings.ItemDelay.D(),
		StepDelay:  g.settings.StepDelay.D(),
		Lifetime:   v.Lifetime.D(),
		FadeTarget: v.FadeTarget,
		Policy:     g.policy,
		Templates:  spawn.NewTemplates(g.settings.SeriesTemplate, g.settings.Fallback),
	}, g.sched, g.scene, g.anchor, g.board)
	if err := sp.Load(ts); err != nil {
		logging.Errorf("%s: load: %v", title, err)
	}
	sp.OnSpawn(g.onSpawn)

	g.visuals = append(g.visuals, &vis{spawner: sp, button: newButton(len(g.visuals), title)})
	g.layoutButtons()
}

func (g *Game) layoutButtons() {
	if g.openBtn == nil {
		return
	}
	n := len(g.visuals)
	g.openBtn.y = newButton(n, "").y
	g.policyBtn.y = newButton(n+1, "").y
	g.policyBtn.text = "Policy: " + g.policy.String()
	g.dropBtn.y = newButton(n+2, "").y
}

func (g *Game) onSpawn(it spawn.Item) {
	if b, ok := it.Object.(*scene.Ball); ok {
		g.items[b.ID] = it
	}
	g.audio.blip(it.Norm)
}

// Close stops every run and releases audio. Calling it again does nothing.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.stopGen()
	g.audio.close()
}

// drop spawns one ball at the anchor; it belongs to the current generation
// like the series balls, so Space clears it too.
func (g *Game) drop() {
	if _, err := g.dropper.Spawn(g.gen, ""); err != nil {
		logging.Warnf("spawn %s: %v", g.dropper.Template(), err)
		g.lastErr = err
		return
	}
	g.audio.blip(0.5)
}

func (g *Game) toggle(i int) {
	v := g.visuals[i]
	if err := v.spawner.Toggle(g.gen); err != nil {
		g.lastErr = err
		return
	}
	if v.spawner.State() == spawn.Running {
		v.started = g.sched.Elapsed()
	}
}

// clear removes every ball and stops every run.
func (g *Game) clear() {
	g.stopGen()
	g.scene.Clear()
	g.items = map[uuid.UUID]spawn.Item{}
	g.gen, g.stopGen = context.WithCancel(g.root)
	logging.Info("scene cleared")
}

func (g *Game) cyclePolicy() {
	g.policy = g.policy.Next()
	for _, v := range g.visuals {
		if err := v.spawner.SetPolicy(g.policy); err != nil {
			logging.Warnf("%s keeps its policy until the current run ends", v.spawner.Title())
		}
	}
	g.layoutButtons()
}

func (g *Game) handleButton(b *button, mouseX, mouseY int, onClick func()) {
	b.hovered = b.contains(mouseX, mouseY)
	if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.pressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if b.pressed && b.hovered {
			b.clicks++
			b.clicked.trigger(g.root, g.sched, config.FeedbackTime*time.Second)
			g.audio.playClick()
			onClick()
		}
		b.pressed = false
	}
}

func (g *Game) Update() error {
	dt := time.Second / config.TPS
	mouseX, mouseY := ebiten.CursorPosition()

	for i, v := range g.visuals {
		g.handleButton(v.button, mouseX, mouseY, func() { g.toggle(i) })
	}
	g.handleButton(g.openBtn, mouseX, mouseY, func() {
		if err := g.openDatasetDialog(); err != nil {
			g.lastErr = err
		}
	})
	g.handleButton(g.policyBtn, mouseX, mouseY, g.cyclePolicy)
	g.handleButton(g.dropBtn, mouseX, mouseY, g.drop)

	for i, k := range digitKeys {
		if i >= len(g.visuals) || !inpututil.IsKeyJustPressed(k) {
			continue
		}
		b := g.visuals[i].button
		b.command = fmt.Sprintf("toggle %d", i+1)
		b.voice.trigger(g.root, g.sched, config.FeedbackTime*time.Second)
		g.toggle(i)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) {
		g.dropBtn.command = "spawn ball"
		g.dropBtn.voice.trigger(g.root, g.sched, config.FeedbackTime*time.Second)
		g.drop()
	}

	if _, wy := ebiten.Wheel(); wy != 0 && g.overAnchor(mouseX, mouseY) {
		g.anchorObj.Resize(wy * config.AnchorWheelStep)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Close()
		return ebiten.Termination
	}

	g.anchorObj.Update()
	g.sched.Tick(dt)
	g.scene.Rise(dt, config.RiseSpeed)
	g.updateFocus(mouseX, mouseY)
	g.pruneItems()

	for _, v := range g.visuals {
		v.button.active = v.spawner.State() == spawn.Running
	}
	g.colorPhase += config.ColorShiftSpeed
	return nil
}

func (g *Game) overAnchor(x, y int) bool {
	px, py, r, ok := g.anchorScreen()
	return ok && math.Hypot(float64(x)-px, float64(y)-py) <= r+8
}

func (g *Game) anchorScreen() (x, y, r float64, ok bool) {
	x, y, k, ok := g.cam.Project(g.anchorObj.Position())
	if !ok {
		return 0, 0, 0, false
	}
	r = g.anchorObj.Size() * config.BallRadius * k * config.WorldScale
	return x, y, r, true
}

// updateFocus feeds hover changes to the gaze handler.
func (g *Game) updateFocus(x, y int) {
	b, ok := g.scene.Pick(float64(x), float64(y), g.cam)
	if ok && b != g.focused {
		if it, known := g.items[b.ID]; known {
			g.info.describe(it)
		}
		g.focused = b
		g.gaze.FocusEnter()
		return
	}
	if !ok && g.focused != nil {
		g.focused = nil
		g.gaze.FocusExit(g.root)
	}
}

func (g *Game) pruneItems() {
	for id := range g.items {
		if _, live := g.scene.Get(id); !live {
			delete(g.items, id)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawAnchor(screen)
	g.drawBalls(screen)

	for _, v := range g.visuals {
		v.button.draw(screen)
	}
	g.openBtn.draw(screen)
	g.policyBtn.draw(screen)
	g.dropBtn.draw(screen)
	g.captions.draw(screen)

	mouseX, mouseY := ebiten.CursorPosition()
	g.info.draw(screen, mouseX, mouseY)

	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) status() string {
	status := "Click a button or press 1-9 to play a dataset, 0 to spawn a ball, wheel over the anchor to resize, Space: clear, Esc/Q: quit"
	for _, v := range g.visuals {
		if v.spawner.State() == spawn.Running {
			status = fmt.Sprintf("%s running %s | %d balls", v.spawner.Title(),
				formatDuration(g.sched.Elapsed()-v.started), g.scene.Len())
			break
		}
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	t := g.sched.Elapsed().Seconds()
	for y := 0; y < config.WindowHeight; y += 2 {
		ratio := float64(y) / float64(config.WindowHeight)
		r := uint8(10 + 10*math.Sin(t*0.5+ratio*math.Pi))
		gv := uint8(12 + 8*math.Cos(t*0.3+ratio*math.Pi))
		b := uint8(24 + 16*math.Sin(t*0.7+ratio*math.Pi))
		vector.StrokeLine(screen, 0, float32(y), float32(config.WindowWidth), float32(y), 2, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

func (g *Game) drawAnchor(screen *ebiten.Image) {
	x, y, r, ok := g.anchorScreen()
	if !ok {
		return
	}
	pulse := clamp01(g.audio.level() * 4)
	hr, hg, hb := hsvToRgb(g.colorPhase*360, 0.5, 0.9)
	glow := color.RGBA{R: hr, G: hg, B: hb, A: uint8(60 + 160*pulse)}
	vector.StrokeCircle(screen, float32(x), float32(y), float32(r), 3, glow, true)
	vector.StrokeCircle(screen, float32(x), float32(y), float32(r*(1+0.15*pulse)), 1, glow, true)
	label := fmt.Sprintf("x%.2f", g.anchor.ScaleFactor())
	ebitenutil.DebugPrintAt(screen, label, int(x)-len(label)*3, int(y+r)+4)
}

func (g *Game) drawBalls(screen *ebiten.Image) {
	for _, b := range g.scene.Balls() {
		x, y, r, ok := g.cam.ProjectBall(b)
		if !ok || r < 0.5 {
			continue
		}
		alphas := b.MaterialAlphas()
		rgb := b.Template.Color
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), withAlpha(rgb, alphas[0]), true)
		for i, a := range alphas[1:] {
			inner := r * (0.6 - 0.2*float64(i))
			if inner <= 0 {
				break
			}
			vector.DrawFilledCircle(screen, float32(x-r*0.2), float32(y-r*0.2), float32(inner), withAlpha(lighten(rgb, 0.5), a*alphas[0]), true)
		}
		if b == g.focused {
			vector.StrokeCircle(screen, float32(x), float32(y), float32(r+2), 2, color.RGBA{R: 255, G: 255, B: 255, A: 220}, true)
		}
		if txt := b.Text(); txt != "" && alphas[0] > 0.2 {
			ebitenutil.DebugPrintAt(screen, txt, int(x)-len(txt)*3, int(y)-8)
		}
	}
}
