package ink

import "github.com/lucasb-eyer/go-colorful"

// ansi16Palette and ansi256Palette are the standard xterm color tables,
// used only as a nearest-match target when downgrading true color on a
// terminal that lacks 24-bit support (spec.md §4.A). Index i of each
// slice corresponds to palette index i.
var ansi16Palette = buildPalette([][3]uint8{
	{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
})

var ansi256Palette = build256Palette()

func buildPalette(rgbs [][3]uint8) []colorful.Color {
	out := make([]colorful.Color, len(rgbs))
	for i, rgb := range rgbs {
		c, _ := colorful.MakeColor(rgbColor{rgb[0], rgb[1], rgb[2]})
		out[i] = c
	}
	return out
}

func build256Palette() []colorful.Color {
	out := make([]colorful.Color, 0, 256)
	out = append(out, ansi16Palette...)

	// 6x6x6 color cube, indices 16-231.
	steps := []uint8{0, 95, 135, 175, 215, 255}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				c, _ := colorful.MakeColor(rgbColor{steps[r], steps[g], steps[b]})
				out = append(out, c)
			}
		}
	}

	// Grayscale ramp, indices 232-255.
	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		c, _ := colorful.MakeColor(rgbColor{v, v, v})
		out = append(out, c)
	}

	return out
}
