package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA colour
type Color struct {
	R, G, B, A uint8
}

var (
	White = Color{R: 255, G: 255, B: 255, A: 255}
	Green = Color{R: 0, G: 255, B: 0, A: 255}
)

// ParseColor accepts "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(255)
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in colour %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return Color{}, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// Hex formats c as "#rrggbb", with an alpha suffix when not opaque
func (c Color) Hex() string {
	hex := c.Colorful().Hex()
	if c.A == 255 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, c.A)
}

// WithAlpha returns c with its alpha replaced
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Colorful drops alpha and converts to a go-colorful colour
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
