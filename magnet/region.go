package magnet

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// areaEpsilon is the smallest polygon area that still yields a region.
	areaEpsilon = 1e-6
	// degenerateCross is the |2A| threshold below which a polygon is treated as a point cloud.
	degenerateCross = 1e-12
	tileAreaEpsilon = 1e-6
)

// Region is a magnet area derived from one closed polygon.
type Region struct {
	Polarity        Polarity
	Centroid        cp.Vector
	Area            float64
	TileCount       int
	EffectiveRadius float64
	Strength        float64
	// WorldPath is the source polygon in world space.
	WorldPath Polygon
}

// DistanceToBoundary returns the distance from p to the closest edge of the
// region outline.
func (r Region) DistanceToBoundary(p cp.Vector) float64 {
	return DistanceToEdges(p, r.WorldPath)
}

// TileUnitArea converts a grid cell size and a world scale into the area of
// one tile. Near-zero results fall back to 1.
func TileUnitArea(cellW, cellH, scaleX, scaleY float64) float64 {
	return clampTileArea(math.Abs(cellW * scaleX * cellH * scaleY))
}

func clampTileArea(a float64) float64 {
	if a <= tileAreaEpsilon || math.IsNaN(a) {
		return 1
	}
	return a
}

// PolygonCentroid returns the area-weighted centroid and the signed area of
// an arbitrary, possibly concave, polygon. ok is false for fewer than three
// points. A zero-area polygon succeeds with the vertex mean as centroid and a
// signed area of 0.
func PolygonCentroid(pts Polygon) (centroid cp.Vector, signedArea float64, ok bool) {
	n := len(pts)
	if n < 3 {
		return cp.Vector{}, 0, false
	}

	// a2 accumulates twice the signed area.
	var a2, cx, cy float64
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		a2 += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}

	if math.Abs(a2) < degenerateCross {
		var sx, sy float64
		for _, p := range pts {
			sx += p.X
			sy += p.Y
		}
		return cp.Vector{X: sx / float64(n), Y: sy / float64(n)}, 0, true
	}

	k := 1.0 / (3.0 * a2)
	return cp.Vector{X: cx * k, Y: cy * k}, 0.5 * a2, true
}

// ExtractRegions converts world-space polygons into regions of the given
// polarity. The result preserves input order; degenerate and near-zero-area
// polygons are skipped.
func ExtractRegions(polygons []Polygon, polarity Polarity, tileUnitArea, baseStrengthPerTile float64) []Region {
	if len(polygons) == 0 {
		return nil
	}
	tileUnitArea = clampTileArea(tileUnitArea)

	var regions []Region
	for _, poly := range polygons {
		if len(poly) <= 2 {
			continue
		}
		centroid, signedArea, ok := PolygonCentroid(poly)
		if !ok {
			continue
		}
		absArea := math.Abs(signedArea)
		if absArea <= areaEpsilon {
			continue
		}

		tiles := int(math.Round(absArea / tileUnitArea))
		if tiles < 1 {
			tiles = 1
		}

		path := make(Polygon, len(poly))
		copy(path, poly)

		regions = append(regions, Region{
			Polarity:        polarity,
			Centroid:        centroid,
			Area:            absArea,
			TileCount:       tiles,
			EffectiveRadius: math.Sqrt(absArea / math.Pi),
			Strength:        baseStrengthPerTile * float64(tiles),
			WorldPath:       path,
		})
	}
	return regions
}
