package magnet

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// RebuildError is one source's failed rebuild inside the error returned by
// CommitRebuilds.
type RebuildError struct {
	Source *Source
	Err    error
}

func (e *RebuildError) Error() string {
	name := "<nil>"
	if e.Source != nil {
		name = e.Source.Name
	}
	return fmt.Sprintf("rebuild %s: %v", name, e.Err)
}

func (e *RebuildError) Unwrap() error { return e.Err }

// RebuildFailures splits an error from CommitRebuilds into each failed
// source's own error.
func RebuildFailures(err error) map[*Source]error {
	if err == nil {
		return nil
	}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	out := make(map[*Source]error, len(errs))
	for _, e := range errs {
		var re *RebuildError
		if errors.As(e, &re) && re.Source != nil {
			out[re.Source] = re
		}
	}
	return out
}

// Registry is the live set of field sources contributing to force queries.
// It holds sources by identity and never owns them. A Registry is not safe for
// concurrent use; it is driven from the fixed simulation step.
type Registry struct {
	probe   Probe
	sources map[*Source]struct{}

	pending      []*Source
	pendingGeoms map[*Source]Geometry
}

// NewRegistry creates an empty registry. probe serves FixedDirectional
// sources and may be nil.
func NewRegistry(probe Probe) *Registry {
	return &Registry{
		probe:        probe,
		sources:      make(map[*Source]struct{}),
		pendingGeoms: make(map[*Source]Geometry),
	}
}

// SetProbe replaces the obstruction probe.
func (r *Registry) SetProbe(p Probe) {
	if r == nil {
		return
	}
	r.probe = p
}

// Register adds s. Registering twice is a no-op.
func (r *Registry) Register(s *Source) {
	if r == nil || s == nil {
		return
	}
	if r.sources == nil {
		r.sources = make(map[*Source]struct{})
	}
	r.sources[s] = struct{}{}
}

// Unregister removes s if present.
func (r *Registry) Unregister(s *Source) {
	if r == nil || s == nil {
		return
	}
	delete(r.sources, s)
	if _, ok := r.pendingGeoms[s]; ok {
		delete(r.pendingGeoms, s)
		for i, p := range r.pending {
			if p == s {
				r.pending = append(r.pending[:i], r.pending[i+1:]...)
				break
			}
		}
	}
}

// Contains reports whether s is registered.
func (r *Registry) Contains(s *Source) bool {
	if r == nil || s == nil {
		return false
	}
	_, ok := r.sources[s]
	return ok
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sources)
}

// Sources returns a snapshot of the registered sources in no particular order.
func (r *Registry) Sources() []*Source {
	if r == nil {
		return nil
	}
	out := make([]*Source, 0, len(r.sources))
	for s := range r.sources {
		out = append(out, s)
	}
	return out
}

// ForceAt sums the force of every registered source at pos for an actor of
// polarity hero.
func (r *Registry) ForceAt(pos cp.Vector, hero Polarity) cp.Vector {
	var sum cp.Vector
	if r == nil || !hero.Valid() {
		return sum
	}
	for s := range r.sources {
		sum = sum.Add(s.ForceAt(pos, hero, r.probe))
	}
	return sum
}

// RequestRebuild records that s should be rebuilt from g on the next
// CommitRebuilds. A later request for the same source replaces the geometry
// but keeps its place in the queue.
func (r *Registry) RequestRebuild(s *Source, g Geometry) {
	if r == nil || s == nil {
		return
	}
	if r.pendingGeoms == nil {
		r.pendingGeoms = make(map[*Source]Geometry)
	}
	if _, ok := r.pendingGeoms[s]; !ok {
		r.pending = append(r.pending, s)
	}
	r.pendingGeoms[s] = g
}

// Pending returns the number of sources waiting for CommitRebuilds.
func (r *Registry) Pending() int {
	if r == nil {
		return 0
	}
	return len(r.pending)
}

// CommitRebuilds rebuilds every pending source in request order and registers
// it. Sources without geometry end up with no regions, are unregistered, and
// are reported in the joined error. The rebuilt sources are returned.
func (r *Registry) CommitRebuilds() ([]*Source, error) {
	if r == nil || len(r.pending) == 0 {
		return nil, nil
	}

	pending := r.pending
	geoms := r.pendingGeoms
	r.pending = nil
	r.pendingGeoms = make(map[*Source]Geometry)

	var errs []error
	rebuilt := make([]*Source, 0, len(pending))
	for _, s := range pending {
		if err := s.Rebuild(geoms[s]); err != nil {
			r.Unregister(s)
			errs = append(errs, &RebuildError{Source: s, Err: err})
			continue
		}
		r.Register(s)
		rebuilt = append(rebuilt, s)
	}
	return rebuilt, errors.Join(errs...)
}
