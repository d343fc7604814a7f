package magnet

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

const (
	distanceEpsilon  = 1e-6
	directionEpsilon = 1e-6
	minFalloffPower  = 0.0001
	// defaultProbeDistance is used when a directional source has no influence limit.
	defaultProbeDistance = 1000.0
)

// ErrNoGeometry is returned by Rebuild when a source has nothing to scan.
var ErrNoGeometry = errors.New("magnet: source has no geometry")

// Params are the per-source physical parameters.
type Params struct {
	StrengthScale float64
	// FalloffPower is the distance exponent (1 = 1/r, 2 = 1/r^2).
	FalloffPower float64
	// MaxInfluenceRadius limits range beyond each region's effective radius. 0 = no limit.
	MaxInfluenceRadius float64
	// MinDistance clamps the distance used in the falloff.
	MinDistance float64
}

// DefaultParams returns the authoring defaults.
func DefaultParams() Params {
	return Params{
		StrengthScale:      20,
		FalloffPower:       2,
		MaxInfluenceRadius: 12,
		MinDistance:        0.25,
	}
}

// falloff returns 1/(1+d)^power with the power clamped away from zero.
func (p Params) falloff(d float64) float64 {
	return 1 / math.Pow(1+d, math.Max(minFalloffPower, p.FalloffPower))
}

// Source is a field source: a polarity, physical parameters, a field mode and
// the regions scanned from its geometry. A Source owns its region list.
type Source struct {
	Name                string
	Polarity            Polarity
	BaseStrengthPerTile float64
	Mode                FieldMode
	Params              Params
	// Rotation is the source orientation in radians, used by local-space directions.
	Rotation float64
	// Collider, when non-nil, is the only probe hit body a directional source accepts.
	Collider any

	regions []Region
}

// NewSource returns a radial source with default parameters.
func NewSource(name string, polarity Polarity) *Source {
	return &Source{
		Name:                name,
		Polarity:            polarity,
		BaseStrengthPerTile: 1,
		Mode:                Radial{},
		Params:              DefaultParams(),
	}
}

// Regions returns the current region list. Callers must not modify it.
func (s *Source) Regions() []Region {
	if s == nil {
		return nil
	}
	return s.regions
}

// Rebuild replaces the region list with regions scanned from g. With no
// geometry the list is left empty and ErrNoGeometry is returned.
func (s *Source) Rebuild(g Geometry) error {
	if s == nil {
		return nil
	}
	s.regions = nil
	if g == nil {
		return ErrNoGeometry
	}
	s.regions = ExtractRegions(WorldPaths(g), s.Polarity, g.TileUnitArea(), s.BaseStrengthPerTile)
	return nil
}

// ForceAt returns this source's force on an actor of polarity hero at pos.
// Same polarities repel, opposite polarities attract. probe is only used by
// FixedDirectional sources and may be nil otherwise.
func (s *Source) ForceAt(pos cp.Vector, hero Polarity, probe Probe) cp.Vector {
	var sum cp.Vector
	if s == nil || len(s.regions) == 0 || !hero.Valid() {
		return sum
	}

	switch mode := s.Mode.(type) {
	case FixedDirectional:
		dirN := mode.WorldDirection(s.Rotation)
		for i := range s.regions {
			sum = sum.Add(s.directionalForce(&s.regions[i], mode, dirN, pos, hero, probe))
		}
	default:
		for i := range s.regions {
			sum = sum.Add(s.radialForce(&s.regions[i], pos, hero))
		}
	}
	return sum
}

func (s *Source) radialForce(r *Region, pos cp.Vector, hero Polarity) cp.Vector {
	toPoint := pos.Sub(r.Centroid)
	dist := toPoint.Length()
	if dist < distanceEpsilon {
		return cp.Vector{}
	}
	if s.Params.MaxInfluenceRadius > 0 && dist > s.Params.MaxInfluenceRadius+r.EffectiveRadius {
		return cp.Vector{}
	}

	distSoft := math.Max(s.Params.MinDistance, dist-r.EffectiveRadius*0.5)
	magnitude := s.Params.StrengthScale * r.Strength * s.Params.falloff(distSoft)
	return toPoint.Mult(interactionSign(r.Polarity, hero) * magnitude / dist)
}

func (s *Source) directionalForce(r *Region, mode FixedDirectional, dirN, pos cp.Vector, hero Polarity, probe Probe) cp.Vector {
	if probe == nil {
		return cp.Vector{}
	}
	maxRay := s.Params.MaxInfluenceRadius
	if maxRay <= 0 {
		maxRay = defaultProbeDistance
	}

	hit, ok := probe.Raycast(pos, dirN.Neg(), maxRay, mode.LayerMask)
	if !ok {
		return cp.Vector{}
	}
	if s.Collider != nil && hit.Body != s.Collider {
		return cp.Vector{}
	}

	rayDistance := hit.Distance
	if math.IsInf(rayDistance, 0) {
		rayDistance = 0
	}
	d := math.Max(s.Params.MinDistance, rayDistance)
	magnitude := s.Params.StrengthScale * r.Strength * s.Params.falloff(d)
	return dirN.Mult(interactionSign(r.Polarity, hero) * magnitude)
}

// interactionSign is +1 (push away) for matching polarities and -1 (pull) otherwise.
func interactionSign(region, hero Polarity) float64 {
	regionSign := Negative
	if region == Positive {
		regionSign = Positive
	}
	if hero == regionSign {
		return 1
	}
	return -1
}
