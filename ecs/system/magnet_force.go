package system

import (
	"github.com/milk9111/polarity/ecs"
	"github.com/milk9111/polarity/ecs/component"
	"github.com/milk9111/polarity/logging"
	"github.com/milk9111/polarity/magnet"
	"go.uber.org/zap"
)

// MagnetForceSystem handles the magnet button and applies the field force to
// every actor.
type MagnetForceSystem struct {
	registry *magnet.Registry
	log      *zap.Logger
}

func NewMagnetForceSystem(reg *magnet.Registry, log *zap.Logger) *MagnetForceSystem {
	return &MagnetForceSystem{registry: reg, log: logging.OrNop(log).Named("magnet")}
}

func (s *MagnetForceSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, e := range w.Query(component.MagnetActorComponent.Kind(), component.TransformComponent.Kind()) {
		actor, ok := ecs.Get(w, e, component.MagnetActorComponent)
		if !ok || actor.Controller == nil {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)

		if input, ok := ecs.Get(w, e, component.InputComponent); ok && input.MagnetPressed {
			s.press(w, e, actor.Controller)
		}

		actor.Force = actor.Controller.Force(s.registry, t.Position())
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Body != nil {
			body.Body.ApplyForceAtWorldPoint(actor.Force, body.Body.Position())
		}
		_ = ecs.Add(w, e, component.MagnetActorComponent, actor)
	}
}

func (s *MagnetForceSystem) press(w *ecs.World, e ecs.Entity, c *magnet.Controller) {
	pol, enabled := c.Polarity, c.Enabled
	c.Press()
	if c.Polarity != pol {
		w.Events().Push(ecs.Event{Type: ecs.EventPolarityChanged, Entity: e, Data: c.Polarity})
		s.log.Debug("polarity changed", zap.Stringer("polarity", c.Polarity))
	}
	if c.Enabled != enabled {
		w.Events().Push(ecs.Event{Type: ecs.EventMagnetToggled, Entity: e, Data: c.Enabled})
		s.log.Debug("magnet toggled", zap.Bool("enabled", c.Enabled))
	}
}
