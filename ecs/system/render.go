package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/polarity/ecs"
	"github.com/milk9111/polarity/ecs/component"
	"github.com/milk9111/polarity/magnet"
	"golang.org/x/image/colornames"
)

const forceArrowScale = 0.1

// RenderSystem draws source outlines, region centroids and actors. With
// Debug set it also draws the force arrow and a status line.
type RenderSystem struct {
	Camera Camera
	Debug  bool
	Level  string
}

func NewRenderSystem(cam Camera) *RenderSystem {
	return &RenderSystem{Camera: cam}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Black)

	for _, e := range w.Query(component.MagnetSourceComponent.Kind()) {
		ms, _ := ecs.Get(w, e, component.MagnetSourceComponent)
		r.drawSource(screen, ms.Source)
	}

	for _, e := range w.Query(component.MagnetActorComponent.Kind(), component.TransformComponent.Kind()) {
		actor, _ := ecs.Get(w, e, component.MagnetActorComponent)
		t, _ := ecs.Get(w, e, component.TransformComponent)
		size := cp.Vector{X: 1, Y: 1}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
			size = cp.Vector{X: body.Width, Y: body.Height}
		}
		r.drawActor(screen, t.Position(), size, actor)
		if r.Debug {
			r.drawStatus(screen, actor)
		}
	}
}

func (r *RenderSystem) drawSource(screen *ebiten.Image, src *magnet.Source) {
	if src == nil {
		return
	}
	clr := polarityColor(src.Polarity, true)
	for _, region := range src.Regions() {
		n := len(region.WorldPath)
		for i := 0; i < n; i++ {
			x0, y0 := r.Camera.ToScreen(region.WorldPath[i])
			x1, y1 := r.Camera.ToScreen(region.WorldPath[(i+1)%n])
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
		}
		cx, cy := r.Camera.ToScreen(region.Centroid)
		vector.FillCircle(screen, cx, cy, 3, clr, true)
		if r.Debug {
			vector.StrokeCircle(screen, cx, cy, r.Camera.Scale(region.EffectiveRadius), 1, withAlpha(clr, 96), true)
		}
	}
}

func (r *RenderSystem) drawActor(screen *ebiten.Image, pos, size cp.Vector, actor component.MagnetActor) {
	x, y := r.Camera.ToScreen(cp.Vector{X: pos.X - size.X/2, Y: pos.Y + size.Y/2})
	wdt, hgt := r.Camera.Scale(size.X), r.Camera.Scale(size.Y)
	active := actor.Controller.Active()
	pol := magnet.Polarity(0)
	if actor.Controller != nil {
		pol = actor.Controller.Polarity
	}
	vector.FillRect(screen, x, y, wdt, hgt, polarityColor(pol, active), false)
	vector.StrokeRect(screen, x, y, wdt, hgt, 1, colornames.White, false)

	if r.Debug && actor.Force.LengthSq() > 0 {
		px, py := r.Camera.ToScreen(pos)
		tx, ty := r.Camera.ToScreen(pos.Add(actor.Force.Mult(forceArrowScale)))
		vector.StrokeLine(screen, px, py, tx, ty, 2, colornames.Yellow, true)
	}
}

func (r *RenderSystem) drawStatus(screen *ebiten.Image, actor component.MagnetActor) {
	c := actor.Controller
	if c == nil {
		return
	}
	text := fmt.Sprintf("Level: %s\nPolarity: %s\nMode: %s\nActive: %v\nForce: (%.2f, %.2f)",
		r.Level, c.Polarity, c.Mode, c.Active(), actor.Force.X, actor.Force.Y)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func polarityColor(p magnet.Polarity, active bool) color.Color {
	var c color.RGBA
	switch p {
	case magnet.Positive:
		c = colornames.Crimson
	case magnet.Negative:
		c = colornames.Royalblue
	default:
		c = colornames.Gray
	}
	if !active {
		return withAlpha(c, 80)
	}
	return c
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
