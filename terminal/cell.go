package terminal

import "fmt"

// Color is a cell color. The zero value is the terminal default.
// Palette and RGB colors are tagged in the high byte.
type Color uint32

const (
	ColorDefault Color = 0

	colorPalette Color = 1 << 24
	colorRGB     Color = 2 << 24
	colorKind    Color = 0xFF << 24
)

// The eight ANSI palette colors
const (
	ColorBlack Color = colorPalette | iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// PaletteColor selects an indexed color (set_a_foreground / set_a_background)
func PaletteColor(n uint8) Color {
	return colorPalette | Color(n)
}

// RGBColor selects a direct color; terminals without setrgbf/setrgbb get the
// nearest palette entry
func RGBColor(r, g, b uint8) Color {
	return colorRGB | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// IsDefault reports the terminal default color
func (c Color) IsDefault() bool { return c == ColorDefault }

// Palette returns the palette index of an indexed color
func (c Color) Palette() (int, bool) {
	if c&colorKind != colorPalette {
		return 0, false
	}
	return int(c & 0xFF), true
}

// RGB returns the components of a direct color
func (c Color) RGB() (r, g, b uint8, ok bool) {
	if c&colorKind != colorRGB {
		return 0, 0, 0, false
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c), true
}

func (c Color) String() string {
	if n, ok := c.Palette(); ok {
		return fmt.Sprintf("palette(%d)", n)
	}
	if r, g, b, ok := c.RGB(); ok {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return "default"
}

// Style is the optional styling of a cell
type Style struct {
	Fg        Color
	Bg        Color
	Bold      bool
	Underline bool
}

// Plain reports the style with no attributes set
func (s Style) Plain() bool { return s == Style{} }

// Cell is one screen position: a grapheme cluster and its style.
// Cells compare with ==.
type Cell struct {
	Glyph string
	Style Style
}

// DefaultCell is the blank cell; frames never store it
var DefaultCell = Cell{Glyph: " "}

// IsDefault reports a plain space
func (c Cell) IsDefault() bool {
	return (c.Glyph == " " || c.Glyph == "") && c.Style.Plain()
}
