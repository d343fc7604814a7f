package magnet

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointRegion builds a region without geometry for force tests.
func pointRegion(pol Polarity, center cp.Vector, effRadius, strength float64) Region {
	return Region{
		Polarity:        pol,
		Centroid:        center,
		Area:            math.Pi * effRadius * effRadius,
		TileCount:       1,
		EffectiveRadius: effRadius,
		Strength:        strength,
	}
}

type recordingProbe struct {
	hit    ProbeHit
	ok     bool
	calls  int
	origin cp.Vector
	dir    cp.Vector
	maxD   float64
	mask   uint
}

func (p *recordingProbe) Raycast(origin, dir cp.Vector, maxDistance float64, layerMask uint) (ProbeHit, bool) {
	p.calls++
	p.origin, p.dir, p.maxD, p.mask = origin, dir, maxDistance, layerMask
	return p.hit, p.ok
}

func TestRadialSignConvention(t *testing.T) {
	s := NewSource("red", Positive)
	s.regions = []Region{pointRegion(Positive, cp.Vector{}, 1, 2)}
	pos := cp.Vector{X: 3, Y: 0}

	same := s.ForceAt(pos, Positive, nil)
	opposite := s.ForceAt(pos, Negative, nil)

	assert.Greater(t, same.X, 0.0, "same polarity should push away from the centroid")
	assert.Less(t, opposite.X, 0.0, "opposite polarity should pull toward the centroid")
	assert.InDelta(t, 0, same.Y, 1e-12)
	assert.InDelta(t, same.Length(), opposite.Length(), 1e-12)

	blue := NewSource("blue", Negative)
	blue.regions = []Region{pointRegion(Negative, cp.Vector{}, 1, 2)}
	assert.Greater(t, blue.ForceAt(pos, Negative, nil).X, 0.0)
	assert.Less(t, blue.ForceAt(pos, Positive, nil).X, 0.0)
}

func TestRadialRangeGating(t *testing.T) {
	s := NewSource("gate", Positive)
	s.Params.MaxInfluenceRadius = 5
	s.regions = []Region{pointRegion(Positive, cp.Vector{}, 1, 1)}

	cases := []struct {
		name    string
		dist    float64
		nonZero bool
	}{
		{"inside", 5.99, true},
		{"outside", 6.01, false},
		{"far", 100, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := s.ForceAt(cp.Vector{X: 0, Y: c.dist}, Positive, nil)
			if c.nonZero {
				assert.Greater(t, f.Length(), 0.0)
			} else {
				assert.Equal(t, cp.Vector{}, f)
			}
		})
	}

	t.Run("unlimited", func(t *testing.T) {
		s.Params.MaxInfluenceRadius = 0
		assert.Greater(t, s.ForceAt(cp.Vector{X: 1000}, Positive, nil).Length(), 0.0)
	})
}

func TestRadialEndToEnd(t *testing.T) {
	s := NewSource("block", Positive)
	s.BaseStrengthPerTile = 1
	s.Params = Params{StrengthScale: 20, FalloffPower: 2, MaxInfluenceRadius: 12, MinDistance: 0.25}
	require.NoError(t, s.Rebuild(NewPathGeometry(4, square(0, 0, 4))))

	regions := s.Regions()
	require.Len(t, regions, 1)
	r := regions[0]
	assert.InDelta(t, 16, r.Area, 1e-9)
	assert.Equal(t, 4, r.TileCount)
	assert.InDelta(t, 4, r.Strength, 1e-9)
	assert.InDelta(t, 2.257, r.EffectiveRadius, 1e-3)

	f := s.ForceAt(cp.Vector{X: 3, Y: 0}, Positive, nil)
	assert.InEpsilon(t, 9.70, f.Length(), 0.005)
	assert.Greater(t, f.X, 0.0)
	assert.InDelta(t, 0, f.Y, 1e-9)

	diag := s.ForceAt(cp.Vector{X: 3 / math.Sqrt2, Y: -3 / math.Sqrt2}, Positive, nil)
	assert.InDelta(t, f.Length(), diag.Length(), 1e-9)
	assert.InDelta(t, -diag.X, diag.Y, 1e-9)
}

func TestRadialGuards(t *testing.T) {
	s := NewSource("guards", Positive)
	s.regions = []Region{pointRegion(Positive, cp.Vector{X: 2, Y: 2}, 1, 1)}

	t.Run("zero_polarity", func(t *testing.T) {
		assert.Equal(t, cp.Vector{}, s.ForceAt(cp.Vector{X: 4, Y: 2}, 0, nil))
	})
	t.Run("at_centroid", func(t *testing.T) {
		assert.Equal(t, cp.Vector{}, s.ForceAt(cp.Vector{X: 2, Y: 2}, Positive, nil))
	})
	t.Run("no_regions", func(t *testing.T) {
		empty := NewSource("empty", Positive)
		assert.Equal(t, cp.Vector{}, empty.ForceAt(cp.Vector{X: 1}, Positive, nil))
	})
	t.Run("nil_source", func(t *testing.T) {
		var nilSource *Source
		assert.Equal(t, cp.Vector{}, nilSource.ForceAt(cp.Vector{X: 1}, Positive, nil))
	})
	t.Run("min_distance_clamp", func(t *testing.T) {
		// Within half the effective radius the softened distance is clamped.
		near := s.ForceAt(cp.Vector{X: 2.1, Y: 2}, Positive, nil)
		nearer := s.ForceAt(cp.Vector{X: 2.2, Y: 2}, Positive, nil)
		assert.InDelta(t, near.Length(), nearer.Length(), 1e-9)
		assert.InDelta(t, 20/math.Pow(1.25, 2), near.Length(), 1e-9)
	})
	t.Run("falloff_power_floor", func(t *testing.T) {
		flat := NewSource("flat", Positive)
		flat.Params.FalloffPower = -3
		flat.regions = []Region{pointRegion(Positive, cp.Vector{}, 1, 1)}
		f := flat.ForceAt(cp.Vector{X: 4}, Positive, nil)
		assert.InDelta(t, 20/math.Pow(1+3.5, minFalloffPower), f.Length(), 1e-9)
	})
}

func TestSourceSumsRegions(t *testing.T) {
	s := NewSource("pair", Positive)
	s.Params.MaxInfluenceRadius = 0
	s.regions = []Region{
		pointRegion(Positive, cp.Vector{X: -2}, 0.5, 1),
		pointRegion(Positive, cp.Vector{X: 2}, 0.5, 1),
	}
	f := s.ForceAt(cp.Vector{}, Positive, nil)
	assert.InDelta(t, 0, f.X, 1e-12)
	assert.InDelta(t, 0, f.Y, 1e-12)
}

func TestFixedDirectional(t *testing.T) {
	newDirectional := func(mode FixedDirectional) *Source {
		s := NewSource("conveyor", Positive)
		s.Mode = mode
		s.regions = []Region{pointRegion(Positive, cp.Vector{X: 50, Y: 50}, 1, 3)}
		return s
	}
	up := FixedDirectional{Direction: cp.Vector{X: 0, Y: 2}, LayerMask: 0b10}

	t.Run("no_probe", func(t *testing.T) {
		s := newDirectional(up)
		assert.Equal(t, cp.Vector{}, s.ForceAt(cp.Vector{}, Positive, nil))
	})

	t.Run("no_hit_is_zero_everywhere", func(t *testing.T) {
		s := newDirectional(up)
		probe := &recordingProbe{}
		for _, pos := range []cp.Vector{{}, {X: 50, Y: 49}, {X: -7, Y: 3}} {
			assert.Equal(t, cp.Vector{}, s.ForceAt(pos, Positive, probe))
		}
		assert.Equal(t, 3, probe.calls)
	})

	t.Run("hit_pushes_along_direction", func(t *testing.T) {
		s := newDirectional(up)
		probe := &recordingProbe{hit: ProbeHit{Distance: 2, Body: "floor"}, ok: true}
		f := s.ForceAt(cp.Vector{X: 1, Y: 1}, Positive, probe)

		assert.Equal(t, cp.Vector{X: 1, Y: 1}, probe.origin)
		assert.InDelta(t, 0, probe.dir.X, 1e-12)
		assert.InDelta(t, -1, probe.dir.Y, 1e-12)
		assert.Equal(t, 12.0, probe.maxD)
		assert.Equal(t, uint(0b10), probe.mask)

		want := 20 * 3 / math.Pow(3, 2)
		assert.InDelta(t, 0, f.X, 1e-12)
		assert.InDelta(t, want, f.Y, 1e-9)

		pulled := s.ForceAt(cp.Vector{X: 1, Y: 1}, Negative, probe)
		assert.InDelta(t, -want, pulled.Y, 1e-9)
	})

	t.Run("collider_mismatch", func(t *testing.T) {
		s := newDirectional(up)
		s.Collider = "floor"
		probe := &recordingProbe{hit: ProbeHit{Distance: 1, Body: "wall"}, ok: true}
		assert.Equal(t, cp.Vector{}, s.ForceAt(cp.Vector{}, Positive, probe))

		probe.hit.Body = "floor"
		assert.Greater(t, s.ForceAt(cp.Vector{}, Positive, probe).Y, 0.0)
	})

	t.Run("unlimited_range_probe_distance", func(t *testing.T) {
		s := newDirectional(up)
		s.Params.MaxInfluenceRadius = 0
		probe := &recordingProbe{hit: ProbeHit{Distance: 0.1}, ok: true}
		f := s.ForceAt(cp.Vector{}, Positive, probe)
		assert.Equal(t, defaultProbeDistance, probe.maxD)
		// 0.1 is below MinDistance.
		assert.InDelta(t, 20*3/math.Pow(1.25, 2), f.Y, 1e-9)
	})

	t.Run("infinite_distance", func(t *testing.T) {
		s := newDirectional(up)
		probe := &recordingProbe{hit: ProbeHit{Distance: math.Inf(1)}, ok: true}
		f := s.ForceAt(cp.Vector{}, Positive, probe)
		assert.InDelta(t, 20*3/math.Pow(1.25, 2), f.Y, 1e-9)
	})

	t.Run("local_space_rotation", func(t *testing.T) {
		s := newDirectional(FixedDirectional{Direction: cp.Vector{X: 1}, LocalSpace: true})
		s.Rotation = math.Pi / 2
		probe := &recordingProbe{hit: ProbeHit{Distance: 1}, ok: true}
		f := s.ForceAt(cp.Vector{}, Positive, probe)
		assert.InDelta(t, 0, f.X, 1e-9)
		assert.Greater(t, f.Y, 0.0)
	})

	t.Run("world_space_ignores_rotation", func(t *testing.T) {
		s := newDirectional(FixedDirectional{Direction: cp.Vector{X: 1}, LocalSpace: false})
		s.Rotation = math.Pi / 2
		probe := &recordingProbe{hit: ProbeHit{Distance: 1}, ok: true}
		f := s.ForceAt(cp.Vector{}, Positive, probe)
		assert.Greater(t, f.X, 0.0)
		assert.InDelta(t, 0, f.Y, 1e-9)
	})

	t.Run("zero_direction_defaults_to_x", func(t *testing.T) {
		s := newDirectional(FixedDirectional{})
		probe := &recordingProbe{hit: ProbeHit{Distance: 1}, ok: true}
		f := s.ForceAt(cp.Vector{}, Positive, probe)
		assert.Greater(t, f.X, 0.0)
		assert.InDelta(t, 0, f.Y, 1e-12)
	})

	t.Run("probe_func_adapter", func(t *testing.T) {
		s := newDirectional(up)
		probe := ProbeFunc(func(origin, dir cp.Vector, maxDistance float64, layerMask uint) (ProbeHit, bool) {
			return ProbeHit{Distance: 2}, true
		})
		assert.Greater(t, s.ForceAt(cp.Vector{}, Positive, probe).Y, 0.0)
	})
}

func TestSourceRebuild(t *testing.T) {
	t.Run("replaces_regions", func(t *testing.T) {
		s := NewSource("rebuild", Negative)
		require.NoError(t, s.Rebuild(NewPathGeometry(1, square(0, 0, 1), square(5, 5, 1))))
		require.Len(t, s.Regions(), 2)
		assert.Equal(t, Negative, s.Regions()[0].Polarity)

		require.NoError(t, s.Rebuild(NewPathGeometry(1, square(0, 0, 2))))
		require.Len(t, s.Regions(), 1)
		assert.InDelta(t, 4, s.Regions()[0].Area, 1e-9)
	})

	t.Run("no_geometry_clears", func(t *testing.T) {
		s := NewSource("lost", Positive)
		require.NoError(t, s.Rebuild(NewPathGeometry(1, square(0, 0, 1))))
		err := s.Rebuild(nil)
		assert.True(t, errors.Is(err, ErrNoGeometry))
		assert.Empty(t, s.Regions())
	})

	t.Run("geometry_without_paths", func(t *testing.T) {
		s := NewSource("blank", Positive)
		require.NoError(t, s.Rebuild(NewPathGeometry(1)))
		assert.Empty(t, s.Regions())
	})
}

func TestParseHelpers(t *testing.T) {
	for in, want := range map[string]Polarity{"red": Positive, "Blue": Negative, "+1": Positive, "-1": Negative, " positive ": Positive} {
		got, err := ParsePolarity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePolarity("green")
	assert.Error(t, err)

	mode, err := ParseFieldMode("fixed_directional")
	require.NoError(t, err)
	assert.Equal(t, DefaultFixedDirectional(), mode)
	mode, err = ParseFieldMode("")
	require.NoError(t, err)
	assert.Equal(t, Radial{}, mode)
	_, err = ParseFieldMode("spiral")
	assert.Error(t, err)

	assert.Equal(t, "red", Positive.String())
	assert.Equal(t, "blue", Negative.String())
	assert.False(t, Polarity(0).Valid())
}
