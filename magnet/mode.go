package magnet

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// FieldMode selects how a source turns its regions into force. It is one of
// Radial or FixedDirectional.
type FieldMode interface {
	fieldMode()
	String() string
}

// Radial pushes or pulls along the line from each region centroid.
type Radial struct{}

// FixedDirectional applies force along a constant direction, gated by an
// obstruction probe cast against the push direction.
type FixedDirectional struct {
	Direction cp.Vector
	// LocalSpace rotates Direction by the owning source's rotation.
	LocalSpace bool
	LayerMask  uint
}

func (Radial) fieldMode()           {}
func (FixedDirectional) fieldMode() {}

func (Radial) String() string           { return "radial" }
func (FixedDirectional) String() string { return "fixed_directional" }

// DefaultFixedDirectional returns the authoring defaults: +X, local space,
// probe against every layer.
func DefaultFixedDirectional() FixedDirectional {
	return FixedDirectional{
		Direction:  cp.Vector{X: 1, Y: 0},
		LocalSpace: true,
		LayerMask:  cp.ALL_CATEGORIES,
	}
}

// WorldDirection returns the unit push direction for a source rotated by
// rotation radians. Near-zero directions fall back to +X.
func (m FixedDirectional) WorldDirection(rotation float64) cp.Vector {
	dir := m.Direction
	if m.LocalSpace && rotation != 0 {
		dir = dir.Rotate(cp.ForAngle(rotation))
	}
	if dir.LengthSq() < directionEpsilon {
		return cp.Vector{X: 1, Y: 0}
	}
	return dir.Normalize()
}

// ParseFieldMode maps a mode name onto an empty FieldMode value.
func ParseFieldMode(s string) (FieldMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "radial":
		return Radial{}, nil
	case "fixed_directional", "fixeddirectional", "directional":
		return DefaultFixedDirectional(), nil
	}
	return nil, fmt.Errorf("magnet: unknown field mode %q", s)
}
