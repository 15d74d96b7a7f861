package ink

// borderGlyphs is one named border glyph set: the four corners plus
// the horizontal/vertical edge runes (spec.md §4.G), grounded on
// buffer.go's BorderStyle type and its BorderSingle/BorderRounded/
// BorderDouble predefined values.
type borderGlyphs struct {
	Horizontal, Vertical                       rune
	TopLeft, TopRight, BottomLeft, BottomRight rune
}

var (
	glyphsSingle = borderGlyphs{
		Horizontal: '─', Vertical: '│',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	}
	glyphsDouble = borderGlyphs{
		Horizontal: '═', Vertical: '║',
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
	}
	glyphsRound = borderGlyphs{
		Horizontal: '─', Vertical: '│',
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
	}
	glyphsBold = borderGlyphs{
		Horizontal: '━', Vertical: '┃',
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
	}
)

// customBorderGlyphs holds user-registered glyph sets for
// BorderCustom, keyed by the name passed to RegisterCustomBorder.
var customBorderGlyphs = map[string]borderGlyphs{}

// RegisterCustomBorder installs a named custom glyph set, usable by
// setting a node's border Kind to BorderCustom and attaching the name
// via the node's attributes under the "borderCustomName" key
// (spec.md §4.G "a user-provided object").
func RegisterCustomBorder(name string, g CustomBorderGlyphs) {
	customBorderGlyphs[name] = borderGlyphs{
		Horizontal: g.Horizontal, Vertical: g.Vertical,
		TopLeft: g.TopLeft, TopRight: g.TopRight,
		BottomLeft: g.BottomLeft, BottomRight: g.BottomRight,
	}
}

// CustomBorderGlyphs is the public shape callers use with
// RegisterCustomBorder.
type CustomBorderGlyphs struct {
	Horizontal, Vertical                       rune
	TopLeft, TopRight, BottomLeft, BottomRight rune
}

// borderGlyphSet resolves a node's border style to its glyph set. A
// BorderCustom kind looks up the "borderCustomName" attribute
// (spec.md §4.G "a user-provided object") and falls back to
// single-line glyphs when no matching set is registered.
func borderGlyphSet(n *Node) borderGlyphs {
	s := n.Style
	kind := BorderSingle
	for _, e := range []BorderEdge{s.border(0), s.border(1), s.border(2), s.border(3)} {
		if e.Kind != BorderNone {
			kind = e.Kind
			break
		}
	}
	switch kind {
	case BorderDouble:
		return glyphsDouble
	case BorderRound:
		return glyphsRound
	case BorderBold:
		return glyphsBold
	case BorderCustom:
		if name, _ := n.Attributes["borderCustomName"].(string); name != "" {
			if g, ok := customBorderGlyphs[name]; ok {
				return g
			}
		}
		return glyphsSingle
	default:
		return glyphsSingle
	}
}
