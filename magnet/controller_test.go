package magnet

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerPress(t *testing.T) {
	cases := []struct {
		name        string
		mode        ClickMode
		presses     int
		wantPol     Polarity
		wantEnabled bool
		wantActive  bool
	}{
		{"toggle_polarity_once", TogglePolarity, 1, Negative, true, true},
		{"toggle_polarity_twice", TogglePolarity, 2, Positive, true, true},
		{"on_off_once", ToggleOnOff, 1, Negative, false, false},
		{"on_off_twice", ToggleOnOff, 2, Negative, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := NewController()
			ctrl.Mode = c.mode
			ctrl.LockedPolarity = Negative
			for i := 0; i < c.presses; i++ {
				ctrl.Press()
			}
			assert.Equal(t, c.wantPol, ctrl.Polarity)
			assert.Equal(t, c.wantEnabled, ctrl.Enabled)
			assert.Equal(t, c.wantActive, ctrl.Active())
		})
	}

	t.Run("invalid_polarity_resets", func(t *testing.T) {
		ctrl := &Controller{Mode: TogglePolarity}
		ctrl.Press()
		assert.Equal(t, Positive, ctrl.Polarity)
	})
}

func TestControllerForce(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(builtSource(t, "red", Positive, square(0, 0, 2)))
	pos := cp.Vector{X: 3}
	raw := reg.ForceAt(pos, Positive)
	require.Greater(t, raw.X, 0.0)

	ctrl := NewController()
	ctrl.ForceScale = 0.5
	f := ctrl.Force(reg, pos)
	assert.InDelta(t, raw.X*0.5, f.X, 1e-9)

	ctrl.Mode = ToggleOnOff
	ctrl.Enabled = false
	assert.Equal(t, cp.Vector{}, ctrl.Force(reg, pos))

	ctrl.Mode = TogglePolarity
	assert.Equal(t, cp.Vector{}, ctrl.Force(nil, pos))
	assert.Less(t, (&Controller{Polarity: Negative, ForceScale: 1}).Force(reg, pos).X, 0.0)
}

func TestParseClickMode(t *testing.T) {
	m, err := ParseClickMode("toggle_on_off")
	require.NoError(t, err)
	assert.Equal(t, ToggleOnOff, m)
	m, err = ParseClickMode("")
	require.NoError(t, err)
	assert.Equal(t, TogglePolarity, m)
	_, err = ParseClickMode("hold")
	assert.Error(t, err)
	assert.Equal(t, "toggle_on_off", ToggleOnOff.String())
}
