package magnet

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// ClickMode decides what the actor's magnet button does.
type ClickMode int

const (
	// TogglePolarity flips the actor's polarity; the magnet is always on.
	TogglePolarity ClickMode = iota
	// ToggleOnOff switches the magnet on and off at LockedPolarity.
	ToggleOnOff
)

func (m ClickMode) String() string {
	switch m {
	case TogglePolarity:
		return "toggle_polarity"
	case ToggleOnOff:
		return "toggle_on_off"
	default:
		return fmt.Sprintf("click_mode(%d)", int(m))
	}
}

// ParseClickMode maps a YAML or flag value onto a ClickMode.
func ParseClickMode(s string) (ClickMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "toggle_polarity", "polarity":
		return TogglePolarity, nil
	case "toggle_on_off", "on_off", "onoff":
		return ToggleOnOff, nil
	}
	return 0, fmt.Errorf("magnet: unknown click mode %q", s)
}

// Controller is the actor side of the field: its polarity and how the magnet
// button changes it.
type Controller struct {
	Polarity       Polarity
	Mode           ClickMode
	Enabled        bool
	LockedPolarity Polarity
	ForceScale     float64
}

// NewController returns a red, always-on controller with unit force scale.
func NewController() *Controller {
	return &Controller{
		Polarity:       Positive,
		Mode:           TogglePolarity,
		Enabled:        true,
		LockedPolarity: Positive,
		ForceScale:     1,
	}
}

// Press applies one magnet button press.
func (c *Controller) Press() {
	if c == nil {
		return
	}
	switch c.Mode {
	case TogglePolarity:
		if !c.Polarity.Valid() {
			c.Polarity = Positive
			return
		}
		c.Polarity = c.Polarity.Flip()
	case ToggleOnOff:
		c.Enabled = !c.Enabled
		c.Polarity = c.LockedPolarity
	}
}

// Active reports whether the controller currently feels the field.
func (c *Controller) Active() bool {
	if c == nil {
		return false
	}
	return c.Mode == TogglePolarity || c.Enabled
}

// Force returns the scaled field force at pos, or zero when inactive.
func (c *Controller) Force(reg *Registry, pos cp.Vector) cp.Vector {
	if !c.Active() || reg == nil {
		return cp.Vector{}
	}
	return reg.ForceAt(pos, c.Polarity).Mult(c.ForceScale)
}
