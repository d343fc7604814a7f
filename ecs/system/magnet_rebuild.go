package system

import (
	"github.com/milk9111/polarity/ecs"
	"github.com/milk9111/polarity/ecs/component"
	"github.com/milk9111/polarity/logging"
	"github.com/milk9111/polarity/magnet"
	"go.uber.org/zap"
)

// ShapeSync mirrors source outlines into a collision space.
type ShapeSync interface {
	SyncSource(s *magnet.Source)
	RemoveSource(s *magnet.Source)
}

// MagnetRebuildSystem rescans dirty sources, keeps the registry in step with
// the MagnetSource components, and mirrors outlines into the physics space.
type MagnetRebuildSystem struct {
	registry *magnet.Registry
	shapes   ShapeSync
	log      *zap.Logger
	tracked  map[ecs.Entity]*magnet.Source
}

func NewMagnetRebuildSystem(reg *magnet.Registry, shapes ShapeSync, log *zap.Logger) *MagnetRebuildSystem {
	return &MagnetRebuildSystem{
		registry: reg,
		shapes:   shapes,
		log:      logging.OrNop(log).Named("magnet"),
		tracked:  make(map[ecs.Entity]*magnet.Source),
	}
}

func (s *MagnetRebuildSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil {
		return
	}
	s.cleanup(w)

	owners := make(map[*magnet.Source]ecs.Entity)
	for _, e := range w.Query(component.MagnetSourceComponent.Kind()) {
		ms, ok := ecs.Get(w, e, component.MagnetSourceComponent)
		if !ok || ms.Source == nil {
			continue
		}
		if prev := s.tracked[e]; prev != nil && prev != ms.Source {
			s.drop(prev)
		}
		s.tracked[e] = ms.Source
		if !ms.Dirty {
			continue
		}

		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			place(ms, t)
		}
		s.registry.RequestRebuild(ms.Source, ms.Geometry)
		owners[ms.Source] = e
		ms.Dirty = false
		_ = ecs.Add(w, e, component.MagnetSourceComponent, ms)
	}
	if len(owners) == 0 {
		return
	}

	rebuilt, err := s.registry.CommitRebuilds()
	for _, src := range rebuilt {
		if s.shapes != nil {
			s.shapes.SyncSource(src)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventRegionsRebuilt, Entity: owners[src], Data: src})
		s.log.Debug("regions rebuilt", zap.String("source", src.Name), zap.Int("regions", len(src.Regions())))
		delete(owners, src)
	}
	if err == nil {
		return
	}
	// whatever is left in owners failed to rebuild
	failures := magnet.RebuildFailures(err)
	for src, e := range owners {
		if s.shapes != nil {
			s.shapes.RemoveSource(src)
		}
		srcErr := failures[src]
		if srcErr == nil {
			srcErr = err
		}
		w.Events().Push(ecs.Event{Type: ecs.EventRebuildFailed, Entity: e, Data: srcErr})
		s.log.Warn("source rebuild failed", zap.String("source", src.Name), zap.Error(srcErr))
	}
}

// place moves a path geometry and the source orientation onto t.
func place(ms component.MagnetSource, t component.Transform) {
	ms.Source.Rotation = t.Rotation
	g, ok := ms.Geometry.(*magnet.PathGeometry)
	if !ok || g == nil {
		return
	}
	sx, sy := t.Scale()
	g.Xform = magnet.SourceTransform(t.Position(), t.Rotation, sx, sy)
	if ms.CellSize > 0 {
		g.TileArea = magnet.TileUnitArea(ms.CellSize, ms.CellSize, sx, sy)
	}
}

func (s *MagnetRebuildSystem) cleanup(w *ecs.World) {
	for e, src := range s.tracked {
		if w.IsAlive(e) {
			if ms, ok := ecs.Get(w, e, component.MagnetSourceComponent); ok && ms.Source == src {
				continue
			}
		}
		s.drop(src)
		delete(s.tracked, e)
	}
}

func (s *MagnetRebuildSystem) drop(src *magnet.Source) {
	s.registry.Unregister(src)
	if s.shapes != nil {
		s.shapes.RemoveSource(src)
	}
}
