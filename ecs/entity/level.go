package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/polarity/ecs"
	"github.com/milk9111/polarity/ecs/component"
	"github.com/milk9111/polarity/levels"
)

// Scene records the entities built for a level so a reloaded level can be
// applied on top of them.
type Scene struct {
	Name    string
	Actor   ecs.Entity
	Sources map[string]ecs.Entity
}

// BuildLevel creates one entity per source and one for the actor.
func BuildLevel(w *ecs.World, lvl *levels.Level) (*Scene, error) {
	if w == nil || lvl == nil {
		return nil, errors.New("entity: nil world or level")
	}
	scene := &Scene{Name: lvl.Name, Sources: make(map[string]ecs.Entity, len(lvl.Sources))}

	var errs []error
	for i := range lvl.Sources {
		spec := &lvl.Sources[i]
		e, err := BuildSource(w, spec, lvl.CellSize)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scene.Sources[spec.Name] = e
	}
	if lvl.Actor != nil {
		e, err := BuildActor(w, lvl.Actor)
		if err != nil {
			errs = append(errs, err)
		} else {
			scene.Actor = e
		}
	}
	return scene, errors.Join(errs...)
}

// BuildSource creates a source entity queued for its first rebuild.
func BuildSource(w *ecs.World, spec *levels.SourceSpec, cellSize float64) (ecs.Entity, error) {
	src, err := spec.Source()
	if err != nil {
		return 0, fmt.Errorf("entity: source %s: %w", spec.Name, err)
	}
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, sourceTransform(spec)); err != nil {
		return 0, err
	}
	ms := component.MagnetSource{
		Source:   src,
		Geometry: spec.Geometry(),
		CellSize: cellSize,
		Dirty:    true,
	}
	if err := ecs.Add(w, e, component.MagnetSourceComponent, ms); err != nil {
		return 0, err
	}
	return e, nil
}

// BuildActor creates the player: transform, input, physics body and magnet
// controller.
func BuildActor(w *ecs.World, spec *levels.ActorSpec) (ecs.Entity, error) {
	ctrl, err := spec.Controller()
	if err != nil {
		return 0, fmt.Errorf("entity: actor: %w", err)
	}
	e := w.CreateEntity()

	width, height := spec.Size.X, spec.Size.Y
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{
		X:      spec.Position.X,
		Y:      spec.Position.Y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InputComponent, component.Input{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:     width,
		Height:    height,
		Mass:      spec.Mass,
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.MagnetActorComponent, component.MagnetActor{Controller: ctrl}); err != nil {
		return 0, err
	}
	return e, nil
}

// ApplyLevel brings a built scene in line with a reloaded level. Sources are
// matched by name: known ones are reconfigured and marked dirty, new ones are
// built and missing ones destroyed. The actor keeps its position and current
// polarity.
func ApplyLevel(w *ecs.World, scene *Scene, lvl *levels.Level) error {
	if w == nil || scene == nil || lvl == nil {
		return errors.New("entity: nil world, scene or level")
	}
	if scene.Sources == nil {
		scene.Sources = make(map[string]ecs.Entity)
	}
	scene.Name = lvl.Name

	for name, e := range scene.Sources {
		if _, ok := lvl.Source(name); !ok || !w.IsAlive(e) {
			w.DestroyEntity(e)
			delete(scene.Sources, name)
		}
	}

	var errs []error
	for i := range lvl.Sources {
		spec := &lvl.Sources[i]
		e, ok := scene.Sources[spec.Name]
		if !ok {
			ne, err := BuildSource(w, spec, lvl.CellSize)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			scene.Sources[spec.Name] = ne
			continue
		}
		ms, ok := ecs.Get(w, e, component.MagnetSourceComponent)
		if !ok || ms.Source == nil {
			continue
		}
		if err := spec.Configure(ms.Source); err != nil {
			errs = append(errs, fmt.Errorf("entity: source %s: %w", spec.Name, err))
			continue
		}
		ms.Geometry = spec.Geometry()
		ms.CellSize = lvl.CellSize
		ms.Dirty = true
		_ = ecs.Add(w, e, component.MagnetSourceComponent, ms)
		_ = ecs.Add(w, e, component.TransformComponent, sourceTransform(spec))
	}

	if err := applyActor(w, scene, lvl.Actor); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func applyActor(w *ecs.World, scene *Scene, spec *levels.ActorSpec) error {
	if spec == nil {
		return nil
	}
	actor, ok := ecs.Get(w, scene.Actor, component.MagnetActorComponent)
	if !ok || actor.Controller == nil {
		e, err := BuildActor(w, spec)
		if err != nil {
			return err
		}
		scene.Actor = e
		return nil
	}
	fresh, err := spec.Controller()
	if err != nil {
		return fmt.Errorf("entity: actor: %w", err)
	}
	actor.Controller.Mode = fresh.Mode
	actor.Controller.LockedPolarity = fresh.LockedPolarity
	actor.Controller.ForceScale = fresh.ForceScale

	if body, ok := ecs.Get(w, scene.Actor, component.PhysicsBodyComponent); ok {
		body.MoveSpeed = spec.MoveSpeed
		body.JumpSpeed = spec.JumpSpeed
		_ = ecs.Add(w, scene.Actor, component.PhysicsBodyComponent, body)
	}
	return nil
}

func sourceTransform(spec *levels.SourceSpec) component.Transform {
	sx, sy := spec.Transform.Scale()
	return component.Transform{
		X:        spec.Transform.X,
		Y:        spec.Transform.Y,
		Rotation: spec.Transform.Radians(),
		ScaleX:   sx,
		ScaleY:   sy,
	}
}
