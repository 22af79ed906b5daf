package game

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withAlpha returns rgb at opacity a (0-1), premultiplied as ebiten expects.
func withAlpha(rgb [3]uint8, a float64) color.RGBA {
	a = clamp01(a)
	return color.RGBA{
		R: uint8(float64(rgb[0]) * a),
		G: uint8(float64(rgb[1]) * a),
		B: uint8(float64(rgb[2]) * a),
		A: uint8(255 * a),
	}
}

// lighten mixes rgb toward white by f (0-1).
func lighten(rgb [3]uint8, f float64) [3]uint8 {
	f = clamp01(f)
	var out [3]uint8
	for i, c := range rgb {
		out[i] = uint8(float64(c) + (255-float64(c))*f)
	}
	return out
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
