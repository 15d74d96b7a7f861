package ink

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Attribute is a bitset of SGR text attributes, grounded on tui.go's
// Attribute type but trimmed to the dimensions spec.md §4.A names
// (blink is dropped — it has no entry in the spec's style model).
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << 0
	AttrDim            = 1 << 1
	AttrItalic         = 1 << 2
	AttrUnderline      = 1 << 3
	AttrStrike         = 1 << 4
	AttrInverse        = 1 << 5
)

// Has reports whether a is set in the receiver.
func (f Attribute) Has(a Attribute) bool { return f&a != 0 }

// TextStyle is the resolved foreground/background/attribute triple the
// ANSI codec (component A) renders.
type TextStyle struct {
	FG, BG Color
	Attr   Attribute
}

// Equal reports whether two text styles render identically.
func (s TextStyle) Equal(o TextStyle) bool {
	return s.FG == o.FG && s.BG == o.BG && s.Attr == o.Attr
}

const (
	ansiEscape = "\x1b["
	ansiReset  = "\x1b[0m"
)

// sgrCodes returns the SGR parameter codes for s in the exact order
// spec.md §4.A mandates: dim, foreground, background, bold, italic,
// underline, strike, inverse. This order is the binding wire contract
// and intentionally differs from the teacher's own SGR ordering
// (screen.go's writeStyle emits bold/dim/italic/underline/... /fg/bg).
func sgrCodes(s TextStyle) []string {
	var codes []string
	if s.Attr.Has(AttrDim) {
		codes = append(codes, "2")
	}
	if fg := fgCode(s.FG); fg != "" {
		codes = append(codes, fg)
	}
	if bg := bgCode(s.BG); bg != "" {
		codes = append(codes, bg)
	}
	if s.Attr.Has(AttrBold) {
		codes = append(codes, "1")
	}
	if s.Attr.Has(AttrItalic) {
		codes = append(codes, "3")
	}
	if s.Attr.Has(AttrUnderline) {
		codes = append(codes, "4")
	}
	if s.Attr.Has(AttrStrike) {
		codes = append(codes, "9")
	}
	if s.Attr.Has(AttrInverse) {
		codes = append(codes, "7")
	}
	return codes
}

func fgCode(c Color) string {
	switch c.Mode {
	case Color16:
		if c.Index < 8 {
			return strconv.Itoa(30 + int(c.Index))
		}
		return strconv.Itoa(90 + int(c.Index) - 8)
	case Color256:
		return "38;5;" + strconv.Itoa(int(c.Index))
	case ColorRGB:
		return "38;2;" + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
	default:
		return ""
	}
}

func bgCode(c Color) string {
	switch c.Mode {
	case Color16:
		if c.Index < 8 {
			return strconv.Itoa(40 + int(c.Index))
		}
		return strconv.Itoa(100 + int(c.Index) - 8)
	case Color256:
		return "48;5;" + strconv.Itoa(int(c.Index))
	case ColorRGB:
		return "48;2;" + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
	default:
		return ""
	}
}

// openSequence returns the escape sequence that opens style s, or ""
// if s renders no codes (the default, unstyled text).
func openSequence(s TextStyle) string {
	codes := sgrCodes(s)
	if len(codes) == 0 {
		return ""
	}
	return ansiEscape + strings.Join(codes, ";") + "m"
}

// StyleText wraps text in the escape sequence(s) needed to render it with
// s, closing with a full reset. Multi-line text re-opens the style
// after every newline, so each line is independently colorable when
// later sliced (spec.md §4.A).
func StyleText(text string, s TextStyle) string {
	open := openSequence(s)
	if open == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = open + line + ansiReset
	}
	return strings.Join(lines, "\n")
}

// VisibleWidth returns the number of terminal cells text occupies,
// ignoring escape sequences and counting East-Asian-wide runes as 2
// cells and zero-width/combining runes as 0 (spec.md §4.A), via
// go-runewidth's table — the same library the teacher's transitive
// dependency graph (through lipgloss) already standardizes on.
func VisibleWidth(text string) int {
	width := 0
	for _, seg := range splitEscapes(text) {
		if seg.isEscape {
			continue
		}
		g := uniseg.NewGraphemes(seg.text)
		for g.Next() {
			rs := g.Runes()
			width += runewidth.StringWidth(string(rs))
		}
	}
	return width
}

// escSegment is either a literal escape sequence or a run of visible
// text, as split by splitEscapes.
type escSegment struct {
	text     string
	isEscape bool
}

// splitEscapes partitions s into alternating escape-sequence and
// plain-text segments. Only CSI (ESC '[' ... final-byte) sequences are
// recognised, which covers every sequence this codec emits and reads.
func splitEscapes(s string) []escSegment {
	var segs []escSegment
	i := 0
	start := 0
	for i < len(s) {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			if start < i {
				segs = append(segs, escSegment{text: s[start:i]})
			}
			j := i + 2
			for j < len(s) && !isSGRFinal(s[j]) {
				j++
			}
			if j < len(s) {
				j++
			}
			segs = append(segs, escSegment{text: s[i:j], isEscape: true})
			i = j
			start = j
			continue
		}
		i++
	}
	if start < len(s) {
		segs = append(segs, escSegment{text: s[start:]})
	}
	return segs
}

func isSGRFinal(b byte) bool { return b >= 0x40 && b <= 0x7e }

// Slice returns the substring of text spanning visible columns
// [start, end), re-opening any escape sequence that was active at the
// cut point and closing it at the end of the slice, so a slice of
// styled text renders with the same style it had in the original
// (spec.md §4.A).
func Slice(text string, start, end int) string {
	if end <= start {
		return ""
	}
	var out strings.Builder
	var active []string // currently open raw escape sequences, in emission order
	started := false    // whether the slice's first visible cell has been written
	col := 0
	for _, seg := range splitEscapes(text) {
		if seg.isEscape {
			if started {
				out.WriteString(seg.text)
			}
			active = trackEscape(active, seg.text)
			continue
		}
		g := uniseg.NewGraphemes(seg.text)
		for g.Next() {
			rs := g.Runes()
			w := runewidth.StringWidth(string(rs))
			if col >= start && col < end {
				if !started {
					for _, a := range active {
						out.WriteString(a)
					}
					started = true
				}
				out.WriteString(string(rs))
			}
			col += w
			if col >= end {
				break
			}
		}
		if col >= end {
			break
		}
	}
	if started && len(active) > 0 {
		out.WriteString(ansiReset)
	}
	return out.String()
}

// trackEscape maintains the stack of currently-open sequences: a
// reset ("\x1b[0m") clears it, anything else is appended.
func trackEscape(active []string, seq string) []string {
	if seq == ansiReset {
		return active[:0]
	}
	return append(active, seq)
}
