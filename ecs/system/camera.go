package system

import "github.com/jakecoffman/cp"

// Camera maps y-up world units onto the y-down screen.
type Camera struct {
	// Origin is the world point at the bottom-left corner of the screen.
	Origin        cp.Vector
	PixelsPerUnit float64
	ScreenHeight  float64
}

// ToScreen converts a world point to pixel coordinates.
func (c Camera) ToScreen(p cp.Vector) (float32, float32) {
	ppu := c.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	x := (p.X - c.Origin.X) * ppu
	y := c.ScreenHeight - (p.Y-c.Origin.Y)*ppu
	return float32(x), float32(y)
}

// ToWorld converts pixel coordinates back to a world point.
func (c Camera) ToWorld(x, y float64) cp.Vector {
	ppu := c.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	return cp.Vector{X: x/ppu + c.Origin.X, Y: (c.ScreenHeight-y)/ppu + c.Origin.Y}
}

// Scale converts a world length to pixels.
func (c Camera) Scale(d float64) float32 {
	if c.PixelsPerUnit <= 0 {
		return float32(d)
	}
	return float32(d * c.PixelsPerUnit)
}
