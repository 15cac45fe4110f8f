package terminal

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// xterm defaults for the 16 ANSI colors
var ansiColors = [16]uint32{
	0x000000, 0xcd0000, 0x00cd00, 0xcdcd00, 0x0000ee, 0xcd00cd, 0x00cdcd, 0xe5e5e5,
	0x7f7f7f, 0xff0000, 0x00ff00, 0xffff00, 0x5c5cff, 0xff00ff, 0x00ffff, 0xffffff,
}

// palette holds the xterm 256-color palette: ANSI, cube, then the 24-step gray ramp
var palette [256]colorful.Color

func init() {
	for i, v := range ansiColors {
		palette[i] = rgbColorful(uint8(v>>16), uint8(v>>8), uint8(v))
	}
	for i := 0; i < 216; i++ {
		palette[16+i] = rgbColorful(cubeValues[i/36], cubeValues[i/6%6], cubeValues[i%6])
	}
	for i := 0; i < 24; i++ {
		level := uint8(8 + 10*i)
		palette[232+i] = rgbColorful(level, level, level)
	}
}

func rgbColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// nearestPalette finds the perceptually closest entry among the first colors
// palette entries. Ties go to the lower index.
func nearestPalette(r, g, b uint8, colors int) int {
	n := min(max(colors, 8), len(palette))
	c := rgbColorful(r, g, b)

	best, bestDist := 0, math.MaxFloat64
	for i := 0; i < n; i++ {
		if d := c.DistanceLab(palette[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
