// Package colorx provides color conversions and alpha compositing for the
// skin editor: hex strings, RGB, HSV, and 8-bit RGBA with an "over" blend.
package colorx

import (
	"fmt"
	"math"
)

// RGBA is an 8-bit-per-channel color with straight (non-premultiplied) alpha.
type RGBA struct {
	R, G, B, A uint8
}

// Transparent is the fully transparent black pixel.
var Transparent = RGBA{}

// HexToRGBA parses a 6-digit hex color ("#rrggbb" or "rrggbb") into an RGBA
// with alpha derived from opacity in [0,1]. Malformed input yields opaque
// black rather than an error.
func HexToRGBA(hex string, opacity float64) RGBA {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	a := uint8(math.Round(255 * clamp01(opacity)))
	if len(hex) != 6 {
		return RGBA{A: a}
	}

	r, okR := parseHexByte(hex[0:2])
	g, okG := parseHexByte(hex[2:4])
	b, okB := parseHexByte(hex[4:6])
	if !okR || !okG || !okB {
		return RGBA{A: a}
	}

	return RGBA{R: r, G: g, B: b, A: a}
}

// RGBAToHex formats the RGB channels as "#rrggbb". Alpha is dropped.
func RGBAToHex(c RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBToHSV converts 8-bit RGB channels to hue in degrees [0,360) and
// saturation/value in [0,1].
func RGBToHSV(r, g, b uint8) (h, s, v float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	v = max
	if max > 0 {
		s = delta / max
	}

	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
	case gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// HSVToRGB converts hue in degrees [0,360) and saturation/value in [0,1]
// back to 8-bit RGB channels.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	s = clamp01(s)
	v = clamp01(v)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	r = uint8(math.Round((rf + m) * 255))
	g = uint8(math.Round((gf + m) * 255))
	b = uint8(math.Round((bf + m) * 255))
	return r, g, b
}

// Blend composites top over bottom with standard straight-alpha "over":
// outA = topA + bottomA*(1-topA), channels weighted by their alphas.
// A zero output alpha yields transparent black, never a divide by zero.
func Blend(bottom, top RGBA) RGBA {
	ta := float64(top.A) / 255
	ba := float64(bottom.A) / 255

	outA := ta + ba*(1-ta)
	if outA == 0 {
		return Transparent
	}

	blendChannel := func(bc, tc uint8) uint8 {
		out := (float64(tc)*ta + float64(bc)*ba*(1-ta)) / outA
		return uint8(math.Round(out))
	}

	return RGBA{
		R: blendChannel(bottom.R, top.R),
		G: blendChannel(bottom.G, top.G),
		B: blendChannel(bottom.B, top.B),
		A: uint8(math.Round(outA * 255)),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a uint8) RGBA {
	c.A = a
	return c
}

func parseHexByte(s string) (uint8, bool) {
	var v uint8
	for i := 0; i < 2; i++ {
		ch := s[i]
		v <<= 4
		switch {
		case '0' <= ch && ch <= '9':
			v += ch - '0'
		case 'a' <= ch && ch <= 'f':
			v += ch - 'a' + 10
		case 'A' <= ch && ch <= 'F':
			v += ch - 'A' + 10
		default:
			return 0, false
		}
	}
	return v, true
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
