package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/polarity/logging"
	"github.com/milk9111/polarity/magnet"
	"go.uber.org/zap"
)

// Shape categories. Probes never report CategoryActor.
const (
	CategoryTerrain uint = 1 << iota
	CategoryMagnet
	CategoryActor
)

const (
	collisionTypeTerrain cp.CollisionType = iota + 1
	collisionTypeMagnet
	collisionTypeActor
)

// groundNormal is how far a contact normal must point down out of an actor
// for the actor to count as standing on the other shape.
const groundNormal = 0.5

// Config describes the simulated space.
type Config struct {
	Gravity    cp.Vector
	Iterations int
	Damping    float64
	// Bounds, when non-empty, are closed with static walls.
	Bounds cp.BB
}

// DefaultConfig is a space with no gravity and no walls.
func DefaultConfig() Config {
	return Config{Iterations: 20, Damping: 1}
}

// World owns the Chipmunk space, the static outline shapes of every magnet
// source and the actor bodies.
type World struct {
	space   *cp.Space
	log     *zap.Logger
	bounds  []*cp.Shape
	sources map[*magnet.Source][]*cp.Shape
	actors  map[*cp.Body]*cp.Shape
	// grounded holds the actors that stood on something during the last Step.
	grounded map[*cp.Body]bool
}

// NewWorld creates a space for cfg.
func NewWorld(cfg Config, log *zap.Logger) *World {
	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	if cfg.Damping > 0 {
		space.SetDamping(cfg.Damping)
	}
	space.SetGravity(cfg.Gravity)

	w := &World{
		space:   space,
		log:     logging.OrNop(log).Named("physics"),
		sources: make(map[*magnet.Source][]*cp.Shape),
		actors:  make(map[*cp.Body]*cp.Shape),

		grounded: make(map[*cp.Body]bool),
	}
	w.buildBounds(cfg.Bounds)
	w.installGroundHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) buildBounds(bb cp.BB) {
	if bb.R <= bb.L || bb.T <= bb.B {
		return
	}
	corners := []cp.Vector{{X: bb.L, Y: bb.B}, {X: bb.R, Y: bb.B}, {X: bb.R, Y: bb.T}, {X: bb.L, Y: bb.T}}
	for i := range corners {
		seg := cp.NewSegment(w.space.StaticBody, corners[i], corners[(i+1)%len(corners)], 1)
		seg.SetFriction(0.8)
		seg.SetCollisionType(collisionTypeTerrain)
		seg.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryTerrain, cp.ALL_CATEGORIES))
		w.bounds = append(w.bounds, w.space.AddShape(seg))
	}
}

func (w *World) installGroundHandlers() {
	for _, other := range []cp.CollisionType{collisionTypeTerrain, collisionTypeMagnet} {
		handler := w.space.NewCollisionHandler(collisionTypeActor, other)
		handler.UserData = w
		handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			world, ok := userData.(*World)
			if !ok || world == nil {
				return true
			}
			shapeA, shapeB := arb.Shapes()
			n := arb.Normal()
			actor := shapeA.Body()
			if _, ok := world.actors[actor]; !ok {
				actor = shapeB.Body()
				if _, ok := world.actors[actor]; !ok {
					return true
				}
				n = n.Neg()
			}
			// y-up: the normal from a standing actor into the ground points down
			if n.Y < -groundNormal {
				world.grounded[actor] = true
			}
			return true
		}
	}
}

// Grounded reports whether body rested on terrain or a source outline during
// the last Step.
func (w *World) Grounded(body *cp.Body) bool {
	if w == nil || body == nil {
		return false
	}
	return w.grounded[body]
}

// SyncSource replaces the static shapes of s with one segment per edge of
// each of its regions. Shapes carry s as UserData.
func (w *World) SyncSource(s *magnet.Source) {
	if w == nil || s == nil {
		return
	}
	w.RemoveSource(s)

	var shapes []*cp.Shape
	for _, r := range s.Regions() {
		n := len(r.WorldPath)
		for i := 0; i < n; i++ {
			a, b := r.WorldPath[i], r.WorldPath[(i+1)%n]
			if a.DistanceSq(b) < 1e-12 {
				continue
			}
			seg := cp.NewSegment(w.space.StaticBody, a, b, 0)
			seg.SetFriction(0.8)
			seg.SetCollisionType(collisionTypeMagnet)
			seg.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryMagnet, cp.ALL_CATEGORIES))
			seg.UserData = s
			shapes = append(shapes, w.space.AddShape(seg))
		}
	}
	w.sources[s] = shapes
	w.log.Debug("source shapes synced", zap.String("source", s.Name), zap.Int("segments", len(shapes)))
}

// RemoveSource drops every shape added for s.
func (w *World) RemoveSource(s *magnet.Source) {
	if w == nil || s == nil {
		return
	}
	for _, shape := range w.sources[s] {
		w.space.RemoveShape(shape)
	}
	delete(w.sources, s)
}

// SourceShapes returns the number of segments standing for s.
func (w *World) SourceShapes(s *magnet.Source) int {
	if w == nil {
		return 0
	}
	return len(w.sources[s])
}

// AddActor creates a dynamic box body centred on pos. Actors do not rotate.
func (w *World) AddActor(pos cp.Vector, width, height, mass float64) *cp.Body {
	if w == nil {
		return nil
	}
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(pos)
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeActor)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryActor, cp.ALL_CATEGORIES))
	shape.UserData = body

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.actors[body] = shape
	return body
}

// RemoveActor removes body and its box.
func (w *World) RemoveActor(body *cp.Body) {
	if w == nil || body == nil {
		return
	}
	shape, ok := w.actors[body]
	if !ok {
		return
	}
	w.space.RemoveShape(shape)
	w.space.RemoveBody(body)
	delete(w.actors, body)
	delete(w.grounded, body)
}

// Raycast reports the first non-actor shape along dir within maxDistance
// whose category is in layerMask. Hits on source outlines carry the
// *magnet.Source as Body.
func (w *World) Raycast(origin, dir cp.Vector, maxDistance float64, layerMask uint) (magnet.ProbeHit, bool) {
	if w == nil || maxDistance <= 0 || dir.LengthSq() < 1e-12 {
		return magnet.ProbeHit{}, false
	}
	end := origin.Add(dir.Normalize().Mult(maxDistance))
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, layerMask&^CategoryActor)

	info := w.space.SegmentQueryFirst(origin, end, 0, filter)
	if info.Shape == nil {
		return magnet.ProbeHit{}, false
	}
	return magnet.ProbeHit{Distance: info.Alpha * maxDistance, Body: info.Shape.UserData}, true
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	clear(w.grounded)
	w.space.Step(dt)
}
