package magnet

import "github.com/jakecoffman/cp"

// Polygon is a closed ring of points. The last point connects back to the first.
type Polygon []cp.Vector

// Geometry enumerates the closed outline paths of a field source. Paths are in
// the source's local space; Transform maps them into world space.
type Geometry interface {
	PathCount() int
	PathPointCount(i int) int
	// Path copies path i into dst and returns the number of points written.
	Path(i int, dst []cp.Vector) int
	Transform() cp.Transform
	TileUnitArea() float64
}

// PathGeometry is an in-memory Geometry.
type PathGeometry struct {
	Paths    []Polygon
	Xform    cp.Transform
	TileArea float64
}

// NewPathGeometry returns a geometry with an identity transform.
func NewPathGeometry(tileArea float64, paths ...Polygon) *PathGeometry {
	return &PathGeometry{
		Paths:    paths,
		Xform:    cp.NewTransformIdentity(),
		TileArea: tileArea,
	}
}

func (g *PathGeometry) PathCount() int {
	if g == nil {
		return 0
	}
	return len(g.Paths)
}

func (g *PathGeometry) PathPointCount(i int) int {
	if g == nil || i < 0 || i >= len(g.Paths) {
		return 0
	}
	return len(g.Paths[i])
}

func (g *PathGeometry) Path(i int, dst []cp.Vector) int {
	if g == nil || i < 0 || i >= len(g.Paths) {
		return 0
	}
	return copy(dst, g.Paths[i])
}

func (g *PathGeometry) Transform() cp.Transform {
	if g == nil {
		return cp.NewTransformIdentity()
	}
	return g.Xform
}

func (g *PathGeometry) TileUnitArea() float64 {
	if g == nil {
		return 1
	}
	return g.TileArea
}

// SourceTransform builds the local->world transform of a source placed at pos
// with the given rotation (radians) and scale. Scale is applied first.
func SourceTransform(pos cp.Vector, rotation, scaleX, scaleY float64) cp.Transform {
	return cp.NewTransformRigid(pos, rotation).Mult(cp.NewTransformScale(scaleX, scaleY))
}

// WorldPaths reads every path of g and maps it into world space. Paths with
// two or fewer points, or whose copied length disagrees with the declared
// count, are dropped.
func WorldPaths(g Geometry) []Polygon {
	if g == nil {
		return nil
	}
	count := g.PathCount()
	if count <= 0 {
		return nil
	}

	xf := g.Transform()
	buffer := make([]cp.Vector, 256)
	out := make([]Polygon, 0, count)
	for i := 0; i < count; i++ {
		n := g.PathPointCount(i)
		if n <= 2 {
			continue
		}
		if len(buffer) < n {
			buffer = make([]cp.Vector, n)
		}
		if got := g.Path(i, buffer[:n]); got != n {
			continue
		}
		world := make(Polygon, n)
		for k := 0; k < n; k++ {
			world[k] = xf.Point(buffer[k])
		}
		out = append(out, world)
	}
	return out
}
