package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/polarity/common"
	"github.com/milk9111/polarity/ecs"
	"github.com/milk9111/polarity/ecs/component"
	"github.com/milk9111/polarity/ecs/entity"
	"github.com/milk9111/polarity/ecs/system"
	"github.com/milk9111/polarity/levels"
	"github.com/milk9111/polarity/logging"
	"github.com/milk9111/polarity/magnet"
	"github.com/milk9111/polarity/physics"
	"go.uber.org/zap"
)

type Game struct {
	frames int
	debug  bool

	log      *zap.Logger
	// file is the level name passed to Load; reloads match changed paths against it.
	file     string
	level    *levels.Level
	world    *ecs.World
	registry *magnet.Registry
	physics  *physics.World
	scene    *entity.Scene
	render   *system.RenderSystem
	watcher  *levels.Watcher
}

func NewGame(levelName string, debug, watch bool, log *zap.Logger) (*Game, error) {
	log = logging.OrNop(log)

	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}

	cfg := physics.DefaultConfig()
	cfg.Gravity = lvl.Gravity.Vector()
	cfg.Bounds = lvl.Bounds.BB()
	phys := physics.NewWorld(cfg, log)
	reg := magnet.NewRegistry(phys)

	render := system.NewRenderSystem(system.Camera{
		PixelsPerUnit: common.PixelsPerUnit,
		ScreenHeight:  common.BaseHeight,
	})
	render.Debug = debug
	render.Level = lvl.Name

	g := &Game{
		debug:    debug,
		log:      log,
		file:     levelName,
		level:    lvl,
		world:    ecs.NewWorld(),
		registry: reg,
		physics:  phys,
		render:   render,
	}

	g.world.AddSystem(system.NewInputSystem())
	g.world.AddSystem(system.NewMagnetRebuildSystem(reg, phys, log))
	g.world.AddSystem(system.NewMagnetForceSystem(reg, log))
	g.world.AddSystem(system.NewPhysicsSystem(phys, common.FixedStep))
	g.world.AddSystem(g.render)
	g.world.AddSystem(system.NewEventLogSystem(log))

	g.scene, err = entity.BuildLevel(g.world, lvl)
	if err != nil {
		// a partial scene is still playable
		log.Warn("level built with errors", zap.String("level", lvl.Name), zap.Error(err))
	}
	if g.scene == nil {
		return nil, err
	}

	if watch {
		w, err := levels.NewWatcher("levels")
		if err != nil {
			log.Warn("level hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("sources", len(lvl.Sources)),
		zap.Bool("actor", lvl.Actor != nil),
		zap.Bool("watch", g.watcher != nil),
	)
	g.follow(1)
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.reload()
	g.world.Update()
	g.follow(common.CameraFollow)

	return nil
}

// reload applies on-disk edits to the running level's file.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Drain() {
		if !levels.IsFileOf(path, g.file) {
			g.log.Debug("ignoring change to another level", zap.String("path", path))
			continue
		}
		lvl, err := levels.LoadFile(path)
		if err != nil {
			g.log.Warn("level reload failed", zap.String("path", path), zap.Error(err))
			continue
		}
		if err := entity.ApplyLevel(g.world, g.scene, lvl); err != nil {
			g.log.Warn("level reload applied with errors", zap.String("path", path), zap.Error(err))
		}
		if lvl.Gravity.Vector() != g.level.Gravity.Vector() {
			g.physics.Space().SetGravity(lvl.Gravity.Vector())
		}
		g.level = lvl
		g.render.Level = lvl.Name
		g.log.Info("level reloaded", zap.String("level", lvl.Name), zap.Int("sources", len(lvl.Sources)))
	}

	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			g.log.Warn("level watcher", zap.Error(err))
		}
	default:
	}
}

// follow moves the camera a fraction t of the way toward centering the actor,
// then keeps it inside the level bounds.
func (g *Game) follow(t float64) {
	if g.scene == nil {
		return
	}
	tr, ok := ecs.Get(g.world, g.scene.Actor, component.TransformComponent)
	if !ok {
		return
	}

	cam := &g.render.Camera
	view := cp.Vector{X: common.BaseWidth / cam.PixelsPerUnit, Y: common.BaseHeight / cam.PixelsPerUnit}
	target := tr.Position().Sub(view.Mult(0.5))

	if b := g.level.Bounds; b != nil {
		bb := b.BB()
		target.X = common.Clamp(target.X, bb.L, bb.R-view.X)
		target.Y = common.Clamp(target.Y, bb.B, bb.T-view.Y)
	}

	cam.Origin.X = common.Lerp(cam.Origin.X, target.X, t)
	cam.Origin.Y = common.Lerp(cam.Origin.Y, target.Y, t)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Sources: %d", g.frames, ebiten.ActualFPS(), g.registry.Len()), 0, common.BaseHeight-16)
	}
}

// Close stops the level watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
