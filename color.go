package ink

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// ColorMode identifies how a Color's channels should be interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default, no SGR color code
	Color16                      // basic/bright named colors (index 0-15)
	Color256                     // 8-bit palette (index 0-255)
	ColorRGB                     // 24-bit true color
)

// Color is a terminal color in one of four representations.
type Color struct {
	Mode    ColorMode
	Index   uint8 // Color16 / Color256
	R, G, B uint8 // ColorRGB
}

// DefaultColor returns the terminal's default (unset) color.
func DefaultColor() Color { return Color{Mode: ColorDefault} }

// BasicColor returns one of the 16 basic/bright named colors (0-15).
func BasicColor(index uint8) Color { return Color{Mode: Color16, Index: index} }

// PaletteColor returns one of the 256 indexed palette colors.
func PaletteColor(index uint8) Color { return Color{Mode: Color256, Index: index} }

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Named 16-color palette, the set spec.md §4.A requires.
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

var namedColors = map[string]Color{
	"black": Black, "red": Red, "green": Green, "yellow": Yellow,
	"blue": Blue, "magenta": Magenta, "cyan": Cyan, "white": White,
	"brightblack": BrightBlack, "gray": BrightBlack, "grey": BrightBlack,
	"brightred": BrightRed, "brightgreen": BrightGreen,
	"brightyellow": BrightYellow, "brightblue": BrightBlue,
	"brightmagenta": BrightMagenta, "brightcyan": BrightCyan,
	"brightwhite": BrightWhite,
}

// ParseColor parses the five forms spec.md §4.A recognises: a basic or
// bright named color, 6-digit hex (#rrggbb), rgb(r,g,b), and
// hsl(h,s%,l%). A malformed string returns (zero, false) — callers must
// treat that as "ignore, keep prior value" per spec.md §7 kind 2.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, false
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if strings.HasPrefix(strings.ToLower(s), "rgb(") {
		return parseRGBFunc(s)
	}
	if strings.HasPrefix(strings.ToLower(s), "hsl(") {
		return parseHSLFunc(s)
	}
	return Color{}, false
}

func parseHexColor(s string) (Color, bool) {
	col, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false
	}
	r, g, b := col.RGB255()
	return RGB(r, g, b), true
}

func parseRGBFunc(s string) (Color, bool) {
	inner := strings.TrimSuffix(strings.TrimPrefix(strings.ToLower(s), "rgb("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return Color{}, false
	}
	var vals [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return Color{}, false
		}
		vals[i] = uint8(n)
	}
	return RGB(vals[0], vals[1], vals[2]), true
}

func parseHSLFunc(s string) (Color, bool) {
	inner := strings.TrimSuffix(strings.TrimPrefix(strings.ToLower(s), "hsl("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return Color{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Color{}, false
	}
	sPct, err := parsePercent(parts[1])
	if err != nil {
		return Color{}, false
	}
	lPct, err := parsePercent(parts[2])
	if err != nil {
		return Color{}, false
	}
	col := colorful.Hsl(h, sPct, lPct)
	r, g, b := col.Clamped().RGB255()
	return RGB(r, g, b), true
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

// truecolorCapable reports whether the environment supports 24-bit
// color, per spec.md §4.A: a truecolor marker (COLORTERM set to
// "truecolor" or "24bit") or a TERM value containing "256color" or
// "24bit".
func truecolorCapable() bool {
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return true
	}
	term := os.Getenv("TERM")
	return strings.Contains(term, "256color") || strings.Contains(term, "24bit")
}

// downgrade256Capable reports whether the environment supports at
// least the 8-bit palette (as opposed to only the 16 basic colors),
// using termenv's environment color profile detection.
func downgrade256Capable() bool {
	return termenv.EnvColorProfile() >= termenv.ANSI256
}

// Downgrade converts c to the best representation the current
// environment supports: true color is passed through when capable,
// otherwise it is mapped to the nearest 256-color (or 16-color)
// palette entry using Lab color distance.
func Downgrade(c Color) Color {
	if c.Mode != ColorRGB {
		return c
	}
	if truecolorCapable() {
		return c
	}
	if downgrade256Capable() {
		return PaletteColor(nearestPaletteIndex(c, ansi256Palette))
	}
	return BasicColor(nearestPaletteIndex(c, ansi16Palette))
}

func nearestPaletteIndex(c Color, palette []colorful.Color) uint8 {
	target, ok := colorful.MakeColor(rgbColor{c.R, c.G, c.B})
	_ = ok
	best := 0
	bestDist := -1.0
	for i, p := range palette {
		d := target.DistanceLab(p)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// rgbColor adapts our 0-255 channels to colorful's color.Color interface.
type rgbColor struct{ r, g, b uint8 }

func (c rgbColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) << 8
	g = uint32(c.g) << 8
	b = uint32(c.b) << 8
	a = 0xffff
	return
}

// String renders a human-readable form, useful for debugging/tests.
func (c Color) String() string {
	switch c.Mode {
	case ColorDefault:
		return "default"
	case Color16:
		return fmt.Sprintf("color16(%d)", c.Index)
	case Color256:
		return fmt.Sprintf("color256(%d)", c.Index)
	case ColorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return "invalid"
	}
}
