package magnet

import "github.com/jakecoffman/cp"

type gridPoint struct{ x, y int }

type outlineEdge struct {
	from, to gridPoint
}

// TraceOutlines merges 4-connected solid cells of a width x height grid into
// closed outline paths in cell units. Every boundary loop becomes one path,
// holes included. Cells that only touch diagonally end up in separate loops.
// Collinear points are dropped.
func TraceOutlines(width, height int, solid func(x, y int) bool) []Polygon {
	if width <= 0 || height <= 0 || solid == nil {
		return nil
	}
	filled := func(x, y int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		return solid(x, y)
	}

	// Directed boundary edges keep the solid cell on the same side of travel.
	var edges []outlineEdge
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !filled(x, y) {
				continue
			}
			if !filled(x, y-1) {
				edges = append(edges, outlineEdge{gridPoint{x, y}, gridPoint{x + 1, y}})
			}
			if !filled(x+1, y) {
				edges = append(edges, outlineEdge{gridPoint{x + 1, y}, gridPoint{x + 1, y + 1}})
			}
			if !filled(x, y+1) {
				edges = append(edges, outlineEdge{gridPoint{x + 1, y + 1}, gridPoint{x, y + 1}})
			}
			if !filled(x-1, y) {
				edges = append(edges, outlineEdge{gridPoint{x, y + 1}, gridPoint{x, y}})
			}
		}
	}
	if len(edges) == 0 {
		return nil
	}

	outgoing := make(map[gridPoint][]int, len(edges))
	for i, e := range edges {
		outgoing[e.from] = append(outgoing[e.from], i)
	}

	used := make([]bool, len(edges))
	var out []Polygon
	for start := range edges {
		if used[start] {
			continue
		}
		var loop []gridPoint
		cur := start
		for {
			used[cur] = true
			loop = append(loop, edges[cur].from)
			next, ok := nextOutlineEdge(edges, outgoing, used, cur, start)
			if !ok || next == start {
				break
			}
			cur = next
		}
		if poly := simplifyLoop(loop); len(poly) >= 3 {
			out = append(out, poly)
		}
	}
	return out
}

// nextOutlineEdge picks the edge leaving the end of edge cur: an unused one,
// or start to close the loop. At a pinch vertex it prefers the turn toward
// the solid side so diagonal neighbours are not merged.
func nextOutlineEdge(edges []outlineEdge, outgoing map[gridPoint][]int, used []bool, cur, start int) (int, bool) {
	e := edges[cur]
	dx, dy := e.to.x-e.from.x, e.to.y-e.from.y
	inward := gridPoint{-dy, dx}

	best := -1
	for _, idx := range outgoing[e.to] {
		if used[idx] && idx != start {
			continue
		}
		c := edges[idx]
		if (gridPoint{c.to.x - c.from.x, c.to.y - c.from.y}) == inward {
			return idx, true
		}
		if best < 0 {
			best = idx
		}
	}
	return best, best >= 0
}

func simplifyLoop(loop []gridPoint) Polygon {
	n := len(loop)
	out := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		prev := loop[(i+n-1)%n]
		cur := loop[i]
		next := loop[(i+1)%n]
		ax, ay := cur.x-prev.x, cur.y-prev.y
		bx, by := next.x-cur.x, next.y-cur.y
		if ax*by-ay*bx == 0 {
			continue
		}
		out = append(out, cp.Vector{X: float64(cur.x), Y: float64(cur.y)})
	}
	return out
}
