package ink

import "strings"

// compositorCell is one cell of the output canvas: a single rune plus
// the resolved text style painted under it. Grounded on buffer.go's
// Cell, but carries a TextStyle instead of the teacher's terminal-wide
// Style so the compositor stays independent of the frame driver.
type compositorCell struct {
	Rune  rune
	Style TextStyle
	set   bool
}

// canvas is the compositor's dense, root-sized 2-D output buffer
// (spec.md §4.F). Dense rather than sparse: the teacher's Buffer
// (buffer.go) is dense and bounded by terminal size, which is never
// large enough to warrant sparse addressing.
type canvas struct {
	width, height int
	cells         []compositorCell
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &canvas{width: width, height: height, cells: make([]compositorCell, width*height)}
}

func (cv *canvas) at(x, y int) *compositorCell {
	return &cv.cells[y*cv.width+x]
}

func (cv *canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < cv.width && y < cv.height
}

// clipRect is one entry of the compositor's clip-rectangle stack
// (spec.md §4.F step 4).
type clipRect struct {
	X, Y, W, H int
}

func (r clipRect) contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func intersectClip(a, b clipRect) clipRect {
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.X+a.W, b.X+b.W)
	y1 := min(a.Y+a.H, b.Y+b.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return clipRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Composite renders root's laid-out tree onto a canvas sized to
// root's own box and returns the serialized frame: the rendered
// string and its line count (spec.md §4.F). skipStatic, when true,
// prunes any subtree marked static from the walk entirely (spec.md
// §4.F step 2, §4.H's on_render(skip_static=true)); on_immediate_render
// instead composites with skipStatic=false so static content is
// painted — in document order, exactly once, per spec.md §5.
func Composite(root *Node, skipStatic bool) (string, int) {
	if root.layout == nil {
		return "", 0
	}
	cv := newCanvas(root.layout.W, root.layout.H)
	rootClip := clipRect{X: 0, Y: 0, W: cv.width, H: cv.height}
	paintNode(cv, root, rootClip, skipStatic)
	return serialize(cv)
}

// paintNode walks the tree pre-order, drawing borders/backgrounds for
// containers and squashed text for Text nodes, honoring the active
// clip rectangle. A Text node's descendants (including nested Text)
// are never recursed into directly — flattenText (layout.go) squashes
// them, applying each nested transform innermost-first before this
// node's own transform runs in paintText (spec.md §4.F, §9 open
// question 1).
func paintNode(cv *canvas, n *Node, clip clipRect, skipStatic bool) {
	if n.layout == nil || n.Style.Display.Get(DisplayFlex) == DisplayNone {
		return
	}
	if skipStatic && isStatic(n) {
		return
	}
	box := clipRect{X: n.layout.X, Y: n.layout.Y, W: n.layout.W, H: n.layout.H}
	nodeClip := clip
	if n.Style.OverflowX.Get(OverflowVisible) == OverflowHidden || n.Style.OverflowY.Get(OverflowVisible) == OverflowHidden {
		nodeClip = intersectClip(clip, box)
	}

	switch n.Kind {
	case NodeKindBox, NodeKindRoot:
		paintBackground(cv, n, box, clip)
		paintBorder(cv, n, box, clip)
		for _, c := range visibleChildren(n) {
			paintNode(cv, c, nodeClip, skipStatic)
		}
	case NodeKindText:
		paintText(cv, n, box, clip)
	}
}

func paintBackground(cv *canvas, n *Node, box, clip clipRect) {
	bg, ok := n.Style.BG.Get(DefaultColor()), n.Style.BG.IsSet()
	if !ok {
		return
	}
	style := TextStyle{BG: bg}
	for y := box.Y; y < box.Y+box.H; y++ {
		for x := box.X; x < box.X+box.W; x++ {
			if !clip.contains(x, y) || !cv.inBounds(x, y) {
				continue
			}
			cell := cv.at(x, y)
			if !cell.set {
				cell.Rune = ' '
			}
			cell.Style.BG = style.BG
			cell.set = true
		}
	}
}

// paintText flattens n's TextLeaf/VirtualText descendants into one
// string (spec.md §4.F text-squashing rule), in which every nested
// Text/VirtualText transform has already run (innermost-first), wraps
// per n's style, applies n's own transform to each wrapped line, and
// writes the resulting lines into the canvas.
func paintText(cv *canvas, n *Node, box, clip clipRect) {
	content := flattenText(n)
	mode := n.Style.TextWrap.Get(WrapNormal)
	lines := Render(content, box.W, mode)
	style := n.Style.ResolvedTextStyle()

	for i, line := range lines {
		if n.Transform != nil {
			line = n.Transform(line, i)
		}
		drawLine(cv, line, box.X, box.Y+i, clip, style)
	}
}

func drawLine(cv *canvas, line string, x, y int, clip clipRect, style TextStyle) {
	col := x
	for _, seg := range splitEscapes(line) {
		if seg.isEscape {
			continue
		}
		for _, r := range seg.text {
			w := cellWidth(r)
			if clip.contains(col, y) && cv.inBounds(col, y) {
				cell := cv.at(col, y)
				cell.Rune = r
				cell.Style = style
				cell.set = true
				if w == 2 && cv.inBounds(col+1, y) {
					wide := cv.at(col+1, y)
					wide.Rune = 0
					wide.Style = style
					wide.set = true
				}
			}
			col += w
		}
	}
}

func cellWidth(r rune) int {
	return VisibleWidth(string(r))
}

// paintBorder draws a single-cell-wide border frame around box using
// the style's per-edge border configuration (component G ties into the
// compositor here). Glyphs overwrite whatever the cell held; borders
// of adjacent nodes are not merged into junction glyphs.
func paintBorder(cv *canvas, n *Node, box, clip clipRect) {
	top, right, bottom, left := borderEdges(n.Style)
	if !top && !right && !bottom && !left {
		return
	}
	glyphs := borderGlyphSet(n)

	set := func(x, y int, r rune, c Color) {
		if !clip.contains(x, y) || !cv.inBounds(x, y) {
			return
		}
		cell := cv.at(x, y)
		cell.Rune = r
		cell.Style = TextStyle{FG: c}
		cell.set = true
	}

	edgeColor := func(e BorderEdge) Color {
		return e.Color
	}

	if top {
		c := edgeColor(n.Style.border(0))
		for x := box.X + boolToInt(left); x < box.X+box.W-boolToInt(right); x++ {
			set(x, box.Y, glyphs.Horizontal, c)
		}
	}
	if bottom {
		c := edgeColor(n.Style.border(2))
		for x := box.X + boolToInt(left); x < box.X+box.W-boolToInt(right); x++ {
			set(x, box.Y+box.H-1, glyphs.Horizontal, c)
		}
	}
	if left {
		c := edgeColor(n.Style.border(3))
		for y := box.Y + boolToInt(top); y < box.Y+box.H-boolToInt(bottom); y++ {
			set(box.X, y, glyphs.Vertical, c)
		}
	}
	if right {
		c := edgeColor(n.Style.border(1))
		for y := box.Y + boolToInt(top); y < box.Y+box.H-boolToInt(bottom); y++ {
			set(box.X+box.W-1, y, glyphs.Vertical, c)
		}
	}
	// Corners use the top edge's style, per spec.md §4.G.
	topColor := edgeColor(n.Style.border(0))
	if top && left {
		set(box.X, box.Y, glyphs.TopLeft, topColor)
	}
	if top && right {
		set(box.X+box.W-1, box.Y, glyphs.TopRight, topColor)
	}
	if bottom && left {
		set(box.X, box.Y+box.H-1, glyphs.BottomLeft, topColor)
	}
	if bottom && right {
		set(box.X+box.W-1, box.Y+box.H-1, glyphs.BottomRight, topColor)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// serialize flattens the canvas into a single newline-joined string
// and reports its line count (spec.md §4.F serialization step).
func serialize(cv *canvas) (string, int) {
	if cv.height == 0 {
		return "", 0
	}
	var lines []string
	var lastStyle TextStyle
	hasStyle := false
	styled := false // an open sequence is in effect and needs a closing reset
	for y := 0; y < cv.height; y++ {
		var b strings.Builder
		for x := 0; x < cv.width; x++ {
			cell := cv.at(x, y)
			if cell.set && cell.Rune == 0 {
				continue // trailing column of a wide rune
			}
			r := cell.Rune
			if !cell.set {
				r = ' '
			}
			if !hasStyle || !cell.Style.Equal(lastStyle) {
				if styled {
					b.WriteString(ansiReset)
				}
				open := openSequence(cell.Style)
				b.WriteString(open)
				styled = open != ""
				lastStyle = cell.Style
				hasStyle = true
			}
			b.WriteRune(r)
		}
		if styled {
			b.WriteString(ansiReset)
		}
		hasStyle = false
		styled = false
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n"), len(lines)
}
