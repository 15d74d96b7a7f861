package ink

// layoutNode is the private, 1:1-owned layout handle a Node carries
// (spec.md §3). It holds the solver's working state across the three
// phases and the node's final resolved box, grounded on arena.go's
// Frame.measure/distribute/position trio and flexlayout.go's
// FlexTree.Execute three-phase comment block.
type layoutNode struct {
	node  *Node
	dirty bool

	// measure phase output: natural (unconstrained) content size.
	naturalW, naturalH int

	// final resolved box, in parent-relative... no: in root-relative
	// absolute cells, assigned during the position phase.
	X, Y, W, H int
}

func newLayoutNode(n *Node) *layoutNode {
	return &layoutNode{node: n}
}

// borderEdges reports which of the four edges carry a border, in the
// order top, right, bottom, left.
func borderEdges(s Style) (top, right, bottom, left bool) {
	return s.border(0).Kind != BorderNone,
		s.border(1).Kind != BorderNone,
		s.border(2).Kind != BorderNone,
		s.border(3).Kind != BorderNone
}

// frameInsets returns the total cells consumed by border+padding on
// each edge, the portion of the box model that shrinks content area
// (spec.md §4.C).
func frameInsets(s Style) (top, right, bottom, left int) {
	bt, br, bb, bl := borderEdges(s)
	pad := s.Padding.Get(EdgeInts{})
	top = pad.Top
	right = pad.Right
	bottom = pad.Bottom
	left = pad.Left
	if bt {
		top++
	}
	if br {
		right++
	}
	if bb {
		bottom++
	}
	if bl {
		left++
	}
	return
}

// marginEdges returns the node's own outer spacing per edge
// (spec.md §3 box model: margin sits outside border+padding and
// never shrinks the node's own content area, only the space it
// claims from its parent's main/cross-axis distribution).
func marginEdges(s Style) (top, right, bottom, left int) {
	m := s.Margin.Get(EdgeInts{})
	return m.Top, m.Right, m.Bottom, m.Left
}

func visibleChildren(n *Node) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Style.Display.Get(DisplayFlex) == DisplayNone {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ComputeLayout runs the three-phase solver over root and assigns
// absolute, root-relative coordinates to every visible node's layout
// handle (spec.md §4.C). availableWidth/availableHeight bound the
// root's own box.
func ComputeLayout(root *Node, availableWidth, availableHeight int) {
	measureNode(root, availableWidth)
	distributeNode(root, availableWidth, availableHeight)
	positionNode(root, 0, 0)
}

// measureNode computes each node's natural (content-driven) size
// bottom-up. For Text/TextLeaf nodes this wraps text to the
// caller-supplied width hint; for containers it sums/maxes children
// along the main/cross axis.
func measureNode(n *Node, widthHint int) {
	if n.layout == nil {
		return
	}
	switch n.Kind {
	case NodeKindTextLeaf:
		measureTextLeaf(n, widthHint)
		return
	case NodeKindText:
		measureTextContainer(n, widthHint)
		return
	}

	insetTop, insetRight, insetBottom, insetLeft := frameInsets(n.Style)
	innerWidth := widthHint - insetLeft - insetRight
	if innerWidth < 0 {
		innerWidth = 0
	}

	kids := visibleChildren(n)
	for _, c := range kids {
		measureNode(c, innerWidth)
	}

	dir := n.Style.FlexDirection.Get(FlexColumn)
	gapRow := n.Style.GapRow.Get(0)
	gapCol := n.Style.GapColumn.Get(0)

	var mainTotal, crossMax int
	for i, c := range kids {
		cw, ch := childNatural(c)
		mt, mr, mb, ml := marginEdges(c.Style)
		cw += ml + mr
		ch += mt + mb
		var main, cross int
		if dir == FlexRow {
			main, cross = cw, ch
		} else {
			main, cross = ch, cw
		}
		mainTotal += main
		if cross > crossMax {
			crossMax = cross
		}
		if i > 0 {
			if dir == FlexRow {
				mainTotal += gapCol
			} else {
				mainTotal += gapRow
			}
		}
	}

	var natW, natH int
	if dir == FlexRow {
		natW, natH = mainTotal, crossMax
	} else {
		natW, natH = crossMax, mainTotal
	}
	n.layout.naturalW = resolveDimension(n.Style.Width, natW+insetLeft+insetRight, widthHint)
	n.layout.naturalH = natH + insetTop + insetBottom
	if h := n.Style.Height; h.IsSet() {
		n.layout.naturalH = resolveDimension(h, n.layout.naturalH, widthHint)
	}
}

func childNatural(c *Node) (w, h int) {
	return c.layout.naturalW, c.layout.naturalH
}

func measureTextLeaf(n *Node, widthHint int) {
	w, h := Measure(n.TextContent, widthHint, WrapNormal)
	n.layout.naturalW = w
	n.layout.naturalH = h
}

// measureTextContainer measures a Text node by concatenating its
// TextLeaf/VirtualText descendants' literal content and wrapping the
// result as one paragraph (spec.md §4.B/§4.F text-squashing rule).
func measureTextContainer(n *Node, widthHint int) {
	content := flattenText(n)
	mode := n.Style.TextWrap.Get(WrapNormal)
	w, h := Measure(content, widthHint, mode)
	n.layout.naturalW = w
	n.layout.naturalH = h
}

// flattenText squashes a Text node's descendants into one string
// (spec.md §4.F text-squashing rule). A nested Text or VirtualText
// child has its own transform applied to its own substring before
// concatenation, so that by the time the outermost Text node applies
// its own transform, every nested transform has already run —
// composing innermost-first (spec.md §9 open question 1).
func flattenText(n *Node) string {
	var out string
	for _, c := range n.children {
		switch c.Kind {
		case NodeKindTextLeaf:
			out += c.TextContent
		case NodeKindVirtualText, NodeKindText:
			s := flattenText(c)
			if c.Transform != nil {
				s = c.Transform(s, 0)
			}
			out += s
		}
	}
	return out
}

// resolveDimension turns an author-supplied Dimension into a concrete
// cell count, given the node's natural content size and the available
// space for percentage resolution.
func resolveDimension(d Option[Dimension], natural, available int) int {
	if !d.IsSet() {
		return natural
	}
	dim := d.Get(AutoDim)
	switch dim.Kind {
	case DimCells:
		return int(dim.Value)
	case DimPercent:
		return int(dim.Value * float64(available))
	default:
		return natural
	}
}

// distributeNode assigns each node's final width/height top-down:
// the container decides its own box (from its parent's allocation),
// then distributes remaining main-axis space across children using
// flex-grow/flex-shrink, then recurses.
func distributeNode(n *Node, allocW, allocH int) {
	if n.layout == nil {
		return
	}
	n.layout.W = clampDimension(n.Style.Width, allocW, n.layout.naturalW, n.Style.MinWidth, n.Style.MaxWidth, allocW)
	n.layout.H = clampDimension(n.Style.Height, allocH, n.layout.naturalH, n.Style.MinHeight, n.Style.MaxHeight, allocH)

	if n.Kind == NodeKindTextLeaf || n.Kind == NodeKindText {
		return
	}

	insetTop, insetRight, insetBottom, insetLeft := frameInsets(n.Style)
	innerW := n.layout.W - insetLeft - insetRight
	innerH := n.layout.H - insetTop - insetBottom
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	kids := visibleChildren(n)
	if len(kids) == 0 {
		return
	}

	dir := n.Style.FlexDirection.Get(FlexColumn)
	gapRow := n.Style.GapRow.Get(0)
	gapCol := n.Style.GapColumn.Get(0)
	gap := gapRow
	if dir == FlexRow {
		gap = gapCol
	}
	mainAvail := innerH
	if dir == FlexRow {
		mainAvail = innerW
	}
	mainAvail -= gap * (len(kids) - 1)
	marginMainTotal := 0
	for _, c := range kids {
		mt, mr, mb, ml := marginEdges(c.Style)
		if dir == FlexRow {
			marginMainTotal += ml + mr
		} else {
			marginMainTotal += mt + mb
		}
	}
	mainAvail -= marginMainTotal
	if mainAvail < 0 {
		mainAvail = 0
	}

	mains := solveMainAxis(kids, dir, mainAvail)

	for i, c := range kids {
		mt, mr, mb, ml := marginEdges(c.Style)
		var cw, ch int
		if dir == FlexRow {
			cw = mains[i]
			ch = innerH - mt - mb
			if ch < 0 {
				ch = 0
			}
			if c.Style.AlignSelf.IsSet() || n.Style.AlignItems.IsSet() {
				if align := resolveAlign(n, c); align != AlignStretch {
					ch = c.layout.naturalH
				}
			}
		} else {
			ch = mains[i]
			cw = innerW - ml - mr
			if cw < 0 {
				cw = 0
			}
			if align := resolveAlign(n, c); align != AlignStretch {
				cw = c.layout.naturalW
			}
		}
		distributeNode(c, cw, ch)
	}
}

func resolveAlign(parent, child *Node) Align {
	if child.Style.AlignSelf.IsSet() {
		return child.Style.AlignSelf.Get(AlignStretch)
	}
	return parent.Style.AlignItems.Get(AlignStretch)
}

// solveMainAxis distributes mainAvail cells across kids along the
// main axis, starting from each child's flex-basis (or natural size)
// and applying flex-grow to absorb slack or flex-shrink to absorb
// overflow — the standard single-line flexbox distribution the
// teacher's flexlayout.go/arena.go approximate with fixed row/column
// splits; this generalizes it to arbitrary grow/shrink factors.
func solveMainAxis(kids []*Node, dir FlexDirection, mainAvail int) []int {
	bases := make([]int, len(kids))
	grows := make([]float64, len(kids))
	shrinks := make([]float64, len(kids))
	total := 0
	for i, c := range kids {
		basis := c.layout.naturalW
		if dir == FlexColumn {
			basis = c.layout.naturalH
		}
		if c.Style.FlexBasis.IsSet() {
			basis = resolveDimension(c.Style.FlexBasis, basis, mainAvail)
		}
		bases[i] = basis
		grows[i] = c.Style.FlexGrow.Get(0)
		shrinks[i] = c.Style.FlexShrink.Get(1)
		total += basis
	}

	slack := mainAvail - total
	result := make([]int, len(kids))
	copy(result, bases)

	if slack > 0 {
		growSum := 0.0
		for _, g := range grows {
			growSum += g
		}
		if growSum > 0 {
			remaining := slack
			for i, g := range grows {
				if g <= 0 {
					continue
				}
				share := int(float64(slack) * g / growSum)
				result[i] += share
				remaining -= share
			}
			if remaining != 0 {
				for i := len(result) - 1; i >= 0 && remaining != 0; i-- {
					if grows[i] <= 0 {
						continue
					}
					result[i] += remaining
					remaining = 0
				}
			}
		}
	} else if slack < 0 {
		deficit := -slack
		weightSum := 0.0
		for i, s := range shrinks {
			weightSum += s * float64(bases[i])
		}
		if weightSum > 0 {
			remaining := deficit
			for i, s := range shrinks {
				w := s * float64(bases[i])
				if w <= 0 {
					continue
				}
				share := int(float64(deficit) * w / weightSum)
				if share > result[i] {
					share = result[i]
				}
				result[i] -= share
				remaining -= share
			}
			if remaining > 0 {
				for i := len(result) - 1; i >= 0 && remaining > 0; i-- {
					take := remaining
					if take > result[i] {
						take = result[i]
					}
					result[i] -= take
					remaining -= take
				}
			}
		}
	}
	return result
}

// clampDimension resolves a child's final size along one axis: an
// explicit Width/Height wins outright; otherwise the size the solver
// already allocated (the flex-resolved main-axis share, or the
// cross-axis size the caller computed from stretch/natural) is used
// as is, then both are clamped to any min/max constraint.
func clampDimension(d Option[Dimension], allocated, natural int, min, max Option[Dimension], available int) int {
	v := allocated
	if d.IsSet() {
		v = resolveDimension(d, natural, available)
	}
	if min.IsSet() {
		if mv := resolveDimension(min, 0, available); v < mv {
			v = mv
		}
	}
	if max.IsSet() {
		if mv := resolveDimension(max, v, available); v > mv {
			v = mv
		}
	}
	if v < 0 {
		v = 0
	}
	return v
}

// positionNode assigns absolute, root-relative X/Y coordinates
// top-down, honoring justify-content for leftover main-axis space,
// gap between siblings, and align-items/align-self center/end for
// leftover cross-axis space (spec.md §4.C).
func positionNode(n *Node, x, y int) {
	if n.layout == nil {
		return
	}
	n.layout.X, n.layout.Y = x, y

	if n.Kind == NodeKindTextLeaf || n.Kind == NodeKindText {
		return
	}

	insetTop, insetRight, insetBottom, insetLeft := frameInsets(n.Style)
	_ = insetRight
	_ = insetBottom
	innerX := x + insetLeft
	innerY := y + insetTop

	kids := visibleChildren(n)
	if len(kids) == 0 {
		return
	}

	dir := n.Style.FlexDirection.Get(FlexColumn)
	gapRow := n.Style.GapRow.Get(0)
	gapCol := n.Style.GapColumn.Get(0)
	gap := gapRow
	if dir == FlexRow {
		gap = gapCol
	}

	mainSizes := make([]int, len(kids))
	marginStarts := make([]int, len(kids))
	marginEnds := make([]int, len(kids))
	mainTotal := 0
	for i, c := range kids {
		mt, mr, mb, ml := marginEdges(c.Style)
		if dir == FlexRow {
			mainSizes[i] = c.layout.W
			marginStarts[i], marginEnds[i] = ml, mr
		} else {
			mainSizes[i] = c.layout.H
			marginStarts[i], marginEnds[i] = mt, mb
		}
		mainTotal += mainSizes[i] + marginStarts[i] + marginEnds[i]
	}
	mainTotal += gap * (len(kids) - 1)

	innerMain := n.layout.H - insetTop - insetBottom
	if dir == FlexRow {
		innerMain = n.layout.W - insetLeft - insetRight
	}
	slack := innerMain - mainTotal
	if slack < 0 {
		slack = 0
	}

	offset, between := justifyOffsets(n.Style.JustifyContent.Get(JustifyStart), slack, len(kids))

	cursor := offset
	for i, c := range kids {
		mt, mr, mb, ml := marginEdges(c.Style)
		cross := 0
		if align := resolveAlign(n, c); align == AlignCenter || align == AlignEnd {
			free := n.layout.W - insetLeft - insetRight - ml - mr - c.layout.W
			if dir == FlexRow {
				free = n.layout.H - insetTop - insetBottom - mt - mb - c.layout.H
			}
			cross = free
			if align == AlignCenter {
				cross /= 2
			}
		}
		var cx, cy int
		if dir == FlexRow {
			cx = innerX + cursor + marginStarts[i]
			cy = innerY + mt + cross
			cursor += marginStarts[i] + mainSizes[i] + marginEnds[i] + gap + between
		} else {
			cx = innerX + ml + cross
			cy = innerY + cursor + marginStarts[i]
			cursor += marginStarts[i] + mainSizes[i] + marginEnds[i] + gap + between
		}
		positionNode(c, cx, cy)
	}
}

// justifyOffsets returns the leading offset before the first child
// and the extra gap inserted between each pair of children.
func justifyOffsets(j Justify, slack, n int) (offset, between int) {
	switch j {
	case JustifyCenter:
		return slack / 2, 0
	case JustifyEnd:
		return slack, 0
	case JustifySpaceBetween:
		if n > 1 {
			return 0, slack / (n - 1)
		}
		return 0, 0
	case JustifySpaceAround:
		if n > 0 {
			unit := slack / n
			return unit / 2, unit
		}
		return 0, 0
	case JustifySpaceEvenly:
		unit := slack / (n + 1)
		return unit, unit
	default: // JustifyStart
		return 0, 0
	}
}
