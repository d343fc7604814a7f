package levels

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/polarity/magnet"
)

// Geometry returns the source's local outline paths and placement. It returns
// nil when the spec has neither paths nor solid tiles.
func (s *SourceSpec) Geometry() magnet.Geometry {
	if s == nil {
		return nil
	}
	cell := s.cellSize
	if cell <= 0 {
		cell = 1
	}

	var paths []magnet.Polygon
	switch {
	case len(s.Paths) > 0:
		for _, p := range s.Paths {
			poly := make(magnet.Polygon, 0, len(p))
			for _, v := range p {
				poly = append(poly, cp.Vector{X: v.X * cell, Y: v.Y * cell})
			}
			paths = append(paths, poly)
		}
	case len(s.Tiles) > 0:
		paths = tileOutlines(s.Tiles, cell)
	}
	if len(paths) == 0 {
		return nil
	}

	sx, sy := s.Transform.Scale()
	g := magnet.NewPathGeometry(magnet.TileUnitArea(cell, cell, sx, sy), paths...)
	g.Xform = magnet.SourceTransform(cp.Vector{X: s.Transform.X, Y: s.Transform.Y}, s.Transform.Radians(), sx, sy)
	return g
}

// tileOutlines traces the '#' cells of rows. Row 0 is the top of the grid and
// the bottom row sits on y = 0.
func tileOutlines(rows []string, cell float64) []magnet.Polygon {
	h := len(rows)
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	solid := func(x, y int) bool {
		row := rows[h-1-y]
		return x < len(row) && row[x] == '#'
	}
	loops := magnet.TraceOutlines(w, h, solid)
	for _, loop := range loops {
		for i := range loop {
			loop[i] = loop[i].Mult(cell)
		}
	}
	return loops
}

// Source builds a new source from the spec. Its Collider is the source
// itself, so a directional source only answers probes that hit its own outline.
func (s *SourceSpec) Source() (*magnet.Source, error) {
	src := magnet.NewSource(s.Name, magnet.Positive)
	if err := s.Configure(src); err != nil {
		return nil, err
	}
	src.Collider = src
	return src, nil
}

// Configure copies every authored setting onto src, leaving its regions
// alone. Missing values fall back to the defaults.
func (s *SourceSpec) Configure(src *magnet.Source) error {
	pol := magnet.Positive
	if s.Polarity != "" {
		p, err := magnet.ParsePolarity(s.Polarity)
		if err != nil {
			return err
		}
		pol = p
	}
	mode, err := magnet.ParseFieldMode(s.Mode)
	if err != nil {
		return err
	}
	if fd, ok := mode.(magnet.FixedDirectional); ok {
		if s.FixedDirection != nil {
			fd.Direction = s.FixedDirection.Vector()
		}
		if s.DirectionsInLocalSpace != nil {
			fd.LocalSpace = *s.DirectionsInLocalSpace
		}
		if s.LayerMask != 0 {
			fd.LayerMask = s.LayerMask
		}
		mode = fd
	}

	params := magnet.DefaultParams()
	setIf(&params.StrengthScale, s.StrengthScale)
	setIf(&params.FalloffPower, s.FalloffPower)
	setIf(&params.MaxInfluenceRadius, s.MaxInfluenceRadius)
	setIf(&params.MinDistance, s.MinDistance)

	base := 1.0
	setIf(&base, s.BaseStrengthPerTile)

	src.Name = s.Name
	src.Polarity = pol
	src.Mode = mode
	src.Params = params
	src.BaseStrengthPerTile = base
	src.Rotation = s.Transform.Radians()
	return nil
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
