package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hierscenes/common"
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/milk9111/hierscenes/ecs/entity"
	"github.com/milk9111/hierscenes/ecs/render"
	"github.com/milk9111/hierscenes/ecs/system"
	"github.com/milk9111/hierscenes/scenes"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Game struct {
	cfg    common.Config
	log    zerolog.Logger
	debug  bool
	frames int

	models    *render.Registry
	world     *ecs.World
	scene     *entity.Scene
	scheduler *ecs.Scheduler
	renderer  *system.RenderSystem

	sceneMod time.Time

	screen  *render.Screen
	hud     *HUD
	watcher *scenes.Watcher
}

func NewGame(cfg common.Config, log zerolog.Logger, debug bool) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		log:    log,
		debug:  debug,
		models: render.NewRegistry(),
		screen: render.NewScreen(),
		hud:    NewHUD(),
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := scenes.NewWatcher("scenes", filepath.Join("scenes", "scripts"))
		if err != nil {
			log.Warn().Err(err).Msg("scene hot reload disabled")
		} else {
			g.watcher = w
			log.Info().Msg("watching scenes/ for changes")
		}
	}
	return g, nil
}

// loadScene builds the configured scene into a fresh world. The current world
// is only replaced once the new one has been built successfully.
func (g *Game) loadScene() error {
	w := ecs.NewWorld()
	scene, err := entity.LoadScene(w, g.cfg.Scene, g.models)
	if err != nil {
		return eris.Wrapf(err, "load scene %s", g.cfg.Scene)
	}

	renderer := system.NewRenderSystem(g.models, g.log)
	renderer.GridSlices = g.cfg.GridSlices
	renderer.GridSpacing = g.cfg.GridSpacing
	renderer.Overlay = []system.OverlayText{{Text: "hello world", X: 100, Y: 100}}

	g.world = w
	g.scene = scene
	g.sceneMod, _ = scenes.ModTime(g.cfg.Scene)
	g.renderer = renderer
	g.scheduler = ecs.NewScheduler(
		system.NewRotationAnimatorSystem(scene.Animators...),
		system.NewTransformSystem(g.log),
	)
	system.Propagate(g.world, nil)

	g.log.Info().
		Str("scene", scene.Name).
		Int("entities", len(scene.Order)).
		Int("animators", len(scene.Animators)).
		Msg("scene loaded")
	return nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		g.shutdown()
		return ebiten.Termination
	}

	g.reloadIfChanged()

	dt := 1.0 / float64(ebiten.TPS())
	if err := g.scheduler.Update(g.world, dt); err != nil {
		return err
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.dump()
	}

	g.hud.Update(g.scene.Name, g.activeCameraName())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.BeginFrame(screen, color.Black)
	g.renderer.Draw(g.world, g.screen)
	g.hud.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func (g *Game) reloadIfChanged() {
	if g.watcher == nil {
		return
	}
	changed, err := g.watcher.Drain()
	if err != nil {
		g.log.Warn().Err(err).Msg("scene watcher")
	}
	if !scenes.NeedsReload(g.cfg.Scene, g.sceneMod, changed) {
		return
	}
	if err := g.loadScene(); err != nil {
		g.log.Error().Err(err).Strs("files", changed).Msg("reload failed; keeping current scene")
	}
}

func (g *Game) activeCameraName() string {
	e, _, count := system.ActiveCamera(g.world)
	if count == 0 {
		return ""
	}
	if name, ok := ecs.Get(g.world, e, component.NameComponent.Kind()); ok {
		return name.Value
	}
	return e.String()
}

// dump logs every resolved world matrix keyed by entity name.
func (g *Game) dump() {
	names := make([]string, 0, len(g.scene.Entities))
	for name := range g.scene.Entities {
		names = append(names, name)
	}
	sort.Strings(names)

	worlds := make(map[string]any, len(names))
	for _, name := range names {
		t, ok := ecs.Get(g.world, g.scene.Entities[name], component.TransformComponent.Kind())
		if !ok {
			continue
		}
		worlds[name] = struct {
			Local    [16]float32
			World    [16]float32
			Resolved bool
		}{t.Local(), t.World, t.Resolved}
	}
	g.log.Info().Msg("transforms\n" + spew.Sdump(worlds))
}

func (g *Game) shutdown() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn().Err(err).Msg("close watcher")
		}
	}
	g.models.Unload()
	g.log.Info().Int("frames", g.frames).Msg("shutting down")
}
