package globeengine

import (
	"fmt"
	"image/color"
	"strconv"
)

// RGB stores explicit 8-bit color channels for a marker or arc stroke.
type RGB struct {
	R, G, B uint8
}

// RGBWhite is the fallback used whenever a color string cannot be parsed.
var RGBWhite = RGB{255, 255, 255}

// HexToRGB parses "#rrggbb" or shorthand "#rgb" (the leading "#" is
// optional). Shorthand digits are doubled, so "#abc" means "#aabbcc".
// Malformed input yields opaque white.
func HexToRGB(hex string) RGB {
	s := hex
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGBWhite
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBWhite
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// ColorAt returns the color at animation progress t in [0,1], fading
// linearly from opaque at t=0 to transparent at t=1.
func ColorAt(c RGB, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8((1 - t) * 255)}
}

// RGBAString renders the same fade as ColorAt in CSS rgba() form.
func RGBAString(c RGB, t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, 1-t)
}
