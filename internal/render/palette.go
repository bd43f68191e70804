package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette holds the three colors used to paint a board.
type Palette struct {
	Alive color.RGBA
	Dead  color.RGBA
	Grid  color.RGBA
}

// DefaultPalette returns white cells on a dark board with grey grid lines.
func DefaultPalette() Palette {
	return Palette{
		Alive: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Dead:  color.RGBA{R: 0x1f, G: 0x1f, B: 0x1f, A: 0xff},
		Grid:  color.RGBA{R: 0x5c, G: 0x5c, B: 0x5c, A: 0xff},
	}
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("render: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("render: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
