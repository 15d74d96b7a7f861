package ink

import "strconv"

// Option is an explicit optional value, used throughout Style so that a
// sparse, author-supplied patch and a fully resolved style share one
// representation (spec.md §9 design note: "struct-of-optionals with an
// explicit builder, not a dynamic map").
type Option[T any] struct {
	set   bool
	value T
}

// Some returns a set Option holding v.
func Some[T any](v T) Option[T] { return Option[T]{set: true, value: v} }

// IsSet reports whether the option carries a value.
func (o Option[T]) IsSet() bool { return o.set }

// Get returns the held value, or def if unset.
func (o Option[T]) Get(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Equal reports whether two options carry the same set-ness and value.
func (o Option[T]) Equal(other Option[T], eq func(a, b T) bool) bool {
	if o.set != other.set {
		return false
	}
	if !o.set {
		return true
	}
	return eq(o.value, other.value)
}

// DimensionKind distinguishes how a size Dimension should be resolved.
type DimensionKind uint8

const (
	DimAuto DimensionKind = iota
	DimCells
	DimPercent
)

// Dimension is a width/height/basis value: an explicit cell count, a
// percentage of the available space, or auto (content-driven).
type Dimension struct {
	Kind  DimensionKind
	Value float64 // cells for DimCells, 0-1 fraction for DimPercent
}

// AutoDim is the zero-value auto dimension.
var AutoDim = Dimension{Kind: DimAuto}

// Cells returns an absolute-size dimension.
func Cells(n float64) Dimension { return Dimension{Kind: DimCells, Value: n} }

// Percent returns a percentage dimension (0-1 fraction).
func Percent(frac float64) Dimension { return Dimension{Kind: DimPercent, Value: frac} }

// ParseDimension implements spec.md §4.C's coercion rules: a bare
// number sets an absolute size, a string ending in "%" sets a
// percentage, anything else resets to auto.
func ParseDimension(v any) Dimension {
	switch t := v.(type) {
	case int:
		return Cells(float64(t))
	case float64:
		return Cells(t)
	case string:
		if n := len(t); n > 0 && t[n-1] == '%' {
			if f, err := strconv.ParseFloat(t[:n-1], 64); err == nil {
				return Percent(f / 100)
			}
		}
	}
	return AutoDim
}

// FlexDirection controls the main axis of a container's children.
type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexColumn
)

// Justify controls distribution of children along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align controls positioning along the cross axis.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Overflow controls whether content beyond a node's inner rectangle is
// clipped (spec.md §4.F step 4).
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
)

// Display toggles whether a node participates in layout at all
// (spec.md §4.C "display: none removes the node from layout").
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayNone
)

// TextWrapMode selects how overlong text is handled (spec.md §4.B).
type TextWrapMode uint8

const (
	WrapNormal TextWrapMode = iota
	TruncateEnd
	TruncateStart
	TruncateMiddle
)

// BorderKind names a border glyph set, or "no border" (the `false`
// sentinel spec.md §4.G refers to).
type BorderKind uint8

const (
	BorderNone BorderKind = iota
	BorderSingle
	BorderDouble
	BorderRound
	BorderBold
	BorderCustom
)

// BorderEdge is one edge's border configuration.
type BorderEdge struct {
	Kind  BorderKind
	Color Color
	Dim   bool
}

// EdgeInts is a per-edge integer quantity (padding, margin), in cells.
type EdgeInts struct {
	Top, Right, Bottom, Left int
}

// Uniform builds an EdgeInts with the same value on every edge.
func Uniform(n int) EdgeInts { return EdgeInts{n, n, n, n} }

// Style is the full box-model + text style record described in
// spec.md §3. Every field is optional: unset fields resolve to a
// default at layout/composite time (see the Resolved* accessors),
// and a patch produced by an author only ever carries the fields that
// changed, so SetStyle's merge is a plain per-field overwrite.
type Style struct {
	Width, Height               Option[Dimension]
	MinWidth, MinHeight         Option[Dimension]
	MaxWidth, MaxHeight         Option[Dimension]
	FlexDirection               Option[FlexDirection]
	FlexGrow, FlexShrink        Option[float64]
	FlexBasis                   Option[Dimension]
	JustifyContent              Option[Justify]
	AlignItems, AlignSelf       Option[Align]
	GapRow, GapColumn           Option[int]
	Padding, Margin             Option[EdgeInts]
	BorderTop, BorderRight      Option[BorderEdge]
	BorderBottom, BorderLeft    Option[BorderEdge]
	OverflowX, OverflowY        Option[Overflow]
	Display                     Option[Display]
	TextWrap                    Option[TextWrapMode]
	FG, BG                      Option[Color]
	Bold, Dim                   Option[bool]
	Italic, Underline           Option[bool]
	Strike, Inverse             Option[bool]
}

// Merge overlays patch onto s, field by field, returning the result.
// Fields unset in patch are left untouched (spec.md §4.D "shallow
// merge into current style").
func (s Style) Merge(patch Style) Style {
	out := s
	if patch.Width.IsSet() {
		out.Width = patch.Width
	}
	if patch.Height.IsSet() {
		out.Height = patch.Height
	}
	if patch.MinWidth.IsSet() {
		out.MinWidth = patch.MinWidth
	}
	if patch.MinHeight.IsSet() {
		out.MinHeight = patch.MinHeight
	}
	if patch.MaxWidth.IsSet() {
		out.MaxWidth = patch.MaxWidth
	}
	if patch.MaxHeight.IsSet() {
		out.MaxHeight = patch.MaxHeight
	}
	if patch.FlexDirection.IsSet() {
		out.FlexDirection = patch.FlexDirection
	}
	if patch.FlexGrow.IsSet() {
		out.FlexGrow = patch.FlexGrow
	}
	if patch.FlexShrink.IsSet() {
		out.FlexShrink = patch.FlexShrink
	}
	if patch.FlexBasis.IsSet() {
		out.FlexBasis = patch.FlexBasis
	}
	if patch.JustifyContent.IsSet() {
		out.JustifyContent = patch.JustifyContent
	}
	if patch.AlignItems.IsSet() {
		out.AlignItems = patch.AlignItems
	}
	if patch.AlignSelf.IsSet() {
		out.AlignSelf = patch.AlignSelf
	}
	if patch.GapRow.IsSet() {
		out.GapRow = patch.GapRow
	}
	if patch.GapColumn.IsSet() {
		out.GapColumn = patch.GapColumn
	}
	if patch.Padding.IsSet() {
		out.Padding = patch.Padding
	}
	if patch.Margin.IsSet() {
		out.Margin = patch.Margin
	}
	if patch.BorderTop.IsSet() {
		out.BorderTop = patch.BorderTop
	}
	if patch.BorderRight.IsSet() {
		out.BorderRight = patch.BorderRight
	}
	if patch.BorderBottom.IsSet() {
		out.BorderBottom = patch.BorderBottom
	}
	if patch.BorderLeft.IsSet() {
		out.BorderLeft = patch.BorderLeft
	}
	if patch.OverflowX.IsSet() {
		out.OverflowX = patch.OverflowX
	}
	if patch.OverflowY.IsSet() {
		out.OverflowY = patch.OverflowY
	}
	if patch.Display.IsSet() {
		out.Display = patch.Display
	}
	if patch.TextWrap.IsSet() {
		out.TextWrap = patch.TextWrap
	}
	if patch.FG.IsSet() {
		out.FG = patch.FG
	}
	if patch.BG.IsSet() {
		out.BG = patch.BG
	}
	if patch.Bold.IsSet() {
		out.Bold = patch.Bold
	}
	if patch.Dim.IsSet() {
		out.Dim = patch.Dim
	}
	if patch.Italic.IsSet() {
		out.Italic = patch.Italic
	}
	if patch.Underline.IsSet() {
		out.Underline = patch.Underline
	}
	if patch.Strike.IsSet() {
		out.Strike = patch.Strike
	}
	if patch.Inverse.IsSet() {
		out.Inverse = patch.Inverse
	}
	return out
}

// ResolvedTextStyle collapses the text-related fields into a concrete
// TextStyle for the ANSI codec (component A), applying defaults for
// anything left unset.
func (s Style) ResolvedTextStyle() TextStyle {
	var attr Attribute
	if s.Bold.Get(false) {
		attr |= AttrBold
	}
	if s.Dim.Get(false) {
		attr |= AttrDim
	}
	if s.Italic.Get(false) {
		attr |= AttrItalic
	}
	if s.Underline.Get(false) {
		attr |= AttrUnderline
	}
	if s.Strike.Get(false) {
		attr |= AttrStrike
	}
	if s.Inverse.Get(false) {
		attr |= AttrInverse
	}
	return TextStyle{
		FG:   s.FG.Get(DefaultColor()),
		BG:   s.BG.Get(DefaultColor()),
		Attr: attr,
	}
}

// border returns the border edge in the requested direction (0 top,
// 1 right, 2 bottom, 3 left), defaulting to BorderNone.
func (s Style) border(edge int) BorderEdge {
	switch edge {
	case 0:
		return s.BorderTop.Get(BorderEdge{})
	case 1:
		return s.BorderRight.Get(BorderEdge{})
	case 2:
		return s.BorderBottom.Get(BorderEdge{})
	default:
		return s.BorderLeft.Get(BorderEdge{})
	}
}

// HasAnyBorder reports whether at least one edge has a border set,
// which per spec.md §4.C consumes one cell of the layout box per edge.
func (s Style) HasAnyBorder() bool {
	return s.border(0).Kind != BorderNone || s.border(1).Kind != BorderNone ||
		s.border(2).Kind != BorderNone || s.border(3).Kind != BorderNone
}
