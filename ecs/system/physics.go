package system

import (
	"github.com/milk9111/polarity/ecs"
	"github.com/milk9111/polarity/ecs/component"
	"github.com/milk9111/polarity/physics"
)

// PhysicsSystem creates actor bodies, drives them from input, steps the
// space and copies body positions back onto transforms.
type PhysicsSystem struct {
	world  *physics.World
	dt     float64
	bodies map[ecs.Entity]*component.PhysicsBody
}

func NewPhysicsSystem(world *physics.World, dt float64) *PhysicsSystem {
	return &PhysicsSystem{
		world:  world,
		dt:     dt,
		bodies: make(map[ecs.Entity]*component.PhysicsBody),
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.world == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.applyInput(w)
	ps.world.Step(ps.dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if bodyComp.Body != nil {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		bodyComp.Body = ps.world.AddActor(transform.Position(), bodyComp.Width, bodyComp.Height, bodyComp.Mass)
		ps.bodies[e] = &bodyComp
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, bodyComp)
	}
}

func (ps *PhysicsSystem) applyInput(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.InputComponent.Kind()) {
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if bodyComp.Body == nil {
			continue
		}
		input, _ := ecs.Get(w, e, component.InputComponent)
		v := bodyComp.Body.Velocity()
		// Without steering input the field keeps whatever horizontal speed it built up.
		if bodyComp.MoveSpeed > 0 && input.MoveX != 0 {
			v.X = input.MoveX * bodyComp.MoveSpeed
		}
		if input.JumpPressed && bodyComp.JumpSpeed > 0 && ps.world.Grounded(bodyComp.Body) {
			v.Y = bodyComp.JumpSpeed
		}
		bodyComp.Body.SetVelocityVector(v)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if bodyComp.Body == nil {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		_ = ecs.Add(w, e, component.TransformComponent, transform)
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) {
			if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && bodyComp.Body == info.Body {
				continue
			}
		}
		ps.world.RemoveActor(info.Body)
		delete(ps.bodies, e)
	}
}
