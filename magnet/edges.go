package magnet

import (
	"math"

	"github.com/jakecoffman/cp"
)

// DistanceToEdges returns the distance from p to the nearest edge of the
// closed ring verts, or +Inf when verts has fewer than two points.
func DistanceToEdges(p cp.Vector, verts Polygon) float64 {
	n := len(verts)
	if n < 2 {
		return math.Inf(1)
	}

	minSq := math.Inf(1)
	for i := 0; i < n; i++ {
		if sq := distanceToSegmentSq(p, verts[i], verts[(i+1)%n]); sq < minSq {
			minSq = sq
		}
	}
	return math.Sqrt(minSq)
}

func distanceToSegmentSq(p, a, b cp.Vector) float64 {
	if a.DistanceSq(b) < degenerateCross {
		return p.DistanceSq(a)
	}
	return p.DistanceSq(p.ClosestPointOnSegment(a, b))
}
