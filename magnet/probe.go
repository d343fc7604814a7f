package magnet

import "github.com/jakecoffman/cp"

// ProbeHit describes the first surface found by a Probe.
type ProbeHit struct {
	Distance float64
	// Body identifies what was hit. Compared with Source.Collider.
	Body any
}

// Probe casts a ray against external collision geometry.
type Probe interface {
	Raycast(origin, dir cp.Vector, maxDistance float64, layerMask uint) (ProbeHit, bool)
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc func(origin, dir cp.Vector, maxDistance float64, layerMask uint) (ProbeHit, bool)

func (f ProbeFunc) Raycast(origin, dir cp.Vector, maxDistance float64, layerMask uint) (ProbeHit, bool) {
	return f(origin, dir, maxDistance, layerMask)
}
