package compare

import "fmt"

// Color is an 8-bit RGB triple used to colour the drawn skeleton.
type Color struct {
	R, G, B uint8
}

// Hex renders the colour as a #rrggbb string for presentation layers.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorFor maps a match percentage onto the red→yellow→green scale:
// 0–50% interpolates red to yellow, 50–100% yellow to green, each
// channel linear on its sub-range. Pure function, no hidden state.
func ColorFor(percent float64) Color {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	if percent <= 50 {
		// red (255,0,0) → yellow (255,255,0)
		g := uint8(255 * percent / 50)
		return Color{R: 255, G: g, B: 0}
	}
	// yellow (255,255,0) → green (0,255,0)
	r := uint8(255 * (1 - (percent-50)/50))
	return Color{R: r, G: 255, B: 0}
}
