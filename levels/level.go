package levels

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/polarity/magnet"
	"gopkg.in/yaml.v3"
)

var (
	ErrBadCellSize     = errors.New("levels: cell_size must be positive")
	ErrDuplicateSource = errors.New("levels: duplicate source name")
	ErrMixedGeometry   = errors.New("levels: source has both paths and tiles")
)

// Level is one authored scene: the magnet sources and the actor that feels them.
type Level struct {
	Name     string       `yaml:"name"`
	CellSize float64      `yaml:"cell_size"`
	Gravity  VecSpec      `yaml:"gravity"`
	Bounds   *BoundsSpec  `yaml:"bounds"`
	Actor    *ActorSpec   `yaml:"actor"`
	Sources  []SourceSpec `yaml:"sources"`
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VecSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type BoundsSpec struct {
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
}

func (b *BoundsSpec) BB() cp.BB {
	if b == nil {
		return cp.BB{}
	}
	return cp.BB{L: b.Left, B: b.Bottom, R: b.Right, T: b.Top}
}

// ActorSpec configures the player body and its magnet controller.
type ActorSpec struct {
	Position       VecSpec  `yaml:"position"`
	Size           VecSpec  `yaml:"size"`
	Mass           float64  `yaml:"mass"`
	MoveSpeed      float64  `yaml:"move_speed"`
	JumpSpeed      float64  `yaml:"jump_speed"`
	Polarity       string   `yaml:"polarity"`
	ClickMode      string   `yaml:"click_mode"`
	LockedPolarity string   `yaml:"locked_polarity"`
	ForceScale     *float64 `yaml:"force_scale"`
	Enabled        *bool    `yaml:"enabled"`
}

// Controller builds the actor's magnet controller.
func (a *ActorSpec) Controller() (*magnet.Controller, error) {
	c := magnet.NewController()
	if a == nil {
		return c, nil
	}
	var errs []error
	if a.Polarity != "" {
		p, err := magnet.ParsePolarity(a.Polarity)
		errs = append(errs, err)
		c.Polarity = p
	}
	if a.LockedPolarity != "" {
		p, err := magnet.ParsePolarity(a.LockedPolarity)
		errs = append(errs, err)
		c.LockedPolarity = p
	}
	mode, err := magnet.ParseClickMode(a.ClickMode)
	errs = append(errs, err)
	c.Mode = mode
	if a.ForceScale != nil {
		c.ForceScale = *a.ForceScale
	}
	if a.Enabled != nil {
		c.Enabled = *a.Enabled
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// TransformSpec places a source. Rotation is in degrees.
type TransformSpec struct {
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Rotation float64  `yaml:"rotation"`
	ScaleX   *float64 `yaml:"scale_x"`
	ScaleY   *float64 `yaml:"scale_y"`
}

// Scale returns the authored scale, defaulting each axis to 1.
func (t TransformSpec) Scale() (float64, float64) {
	sx, sy := 1.0, 1.0
	if t.ScaleX != nil {
		sx = *t.ScaleX
	}
	if t.ScaleY != nil {
		sy = *t.ScaleY
	}
	return sx, sy
}

// Radians returns the rotation in radians.
func (t TransformSpec) Radians() float64 {
	return t.Rotation * math.Pi / 180
}

// SourceSpec is one magnet source. Geometry is either explicit paths or a
// tile grid whose rows run top to bottom.
type SourceSpec struct {
	Name                   string        `yaml:"name"`
	Polarity               string        `yaml:"polarity"`
	BaseStrengthPerTile    *float64      `yaml:"base_strength_per_tile"`
	Transform              TransformSpec `yaml:"transform"`
	Mode                   string        `yaml:"mode"`
	FixedDirection         *VecSpec      `yaml:"fixed_direction"`
	DirectionsInLocalSpace *bool         `yaml:"directions_in_local_space"`
	LayerMask              uint          `yaml:"layer_mask"`
	StrengthScale          *float64      `yaml:"strength_scale"`
	FalloffPower           *float64      `yaml:"falloff_power"`
	MaxInfluenceRadius     *float64      `yaml:"max_influence_radius"`
	MinDistance            *float64      `yaml:"min_distance"`
	Paths                  [][]VecSpec   `yaml:"paths"`
	Tiles                  []string      `yaml:"tiles"`

	cellSize float64
}

// Load reads a level by name, disk first, then the embedded copy.
func Load(name string) (*Level, error) {
	data, err := Read(name)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return Parse(data, name)
}

// LoadFile reads a level from an arbitrary path.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a level. origin names the level in errors and
// becomes its name when the file has none.
func Parse(data []byte, origin string) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", origin, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(origin), filepath.Ext(origin))
	}
	if lvl.CellSize == 0 {
		lvl.CellSize = 1
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", origin, err)
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	var errs []error
	if l.CellSize < 0 {
		errs = append(errs, ErrBadCellSize)
	}
	seen := make(map[string]bool, len(l.Sources))
	for i := range l.Sources {
		s := &l.Sources[i]
		s.cellSize = l.CellSize
		if s.Name == "" {
			s.Name = unnamedSource(i)
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("%w %q", ErrDuplicateSource, s.Name))
		}
		seen[s.Name] = true
		if len(s.Paths) > 0 && len(s.Tiles) > 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMixedGeometry, s.Name))
		}
		if _, err := s.Source(); err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", s.Name, err))
		}
	}
	if _, err := l.Actor.Controller(); err != nil {
		errs = append(errs, fmt.Errorf("actor: %w", err))
	}
	return errors.Join(errs...)
}

// sourceNamespace seeds the names of unnamed sources.
var sourceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("github.com/milk9111/polarity/levels/source"))

// unnamedSource names the i-th source of a level when the file gives none. The
// name only depends on i, so reloading the same file keeps the entity.
func unnamedSource(i int) string {
	return "source-" + uuid.NewSHA1(sourceNamespace, []byte(strconv.Itoa(i))).String()[:8]
}

// Source looks up a source spec by name.
func (l *Level) Source(name string) (*SourceSpec, bool) {
	if l == nil {
		return nil, false
	}
	for i := range l.Sources {
		if l.Sources[i].Name == name {
			return &l.Sources[i], true
		}
	}
	return nil, false
}
