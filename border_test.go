package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorderGlyphSetVariants(t *testing.T) {
	n := CreateNode(NodeKindBox, "")
	n.Style.BorderTop = Some(BorderEdge{Kind: BorderDouble})
	assert.Equal(t, glyphsDouble, borderGlyphSet(n))

	n.Style.BorderTop = Some(BorderEdge{Kind: BorderRound})
	assert.Equal(t, glyphsRound, borderGlyphSet(n))

	n.Style.BorderTop = Some(BorderEdge{Kind: BorderBold})
	assert.Equal(t, glyphsBold, borderGlyphSet(n))
}

func TestBorderGlyphSetCustomFallsBackWithoutRegistration(t *testing.T) {
	n := CreateNode(NodeKindBox, "")
	n.Style.BorderTop = Some(BorderEdge{Kind: BorderCustom})
	assert.Equal(t, glyphsSingle, borderGlyphSet(n))
}

func TestRegisterCustomBorderIsUsed(t *testing.T) {
	RegisterCustomBorder("dots", CustomBorderGlyphs{
		Horizontal: '.', Vertical: ':',
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
	})
	n := CreateNode(NodeKindBox, "")
	n.Style.BorderTop = Some(BorderEdge{Kind: BorderCustom})
	SetAttribute(n, "borderCustomName", "dots")

	got := borderGlyphSet(n)
	assert.Equal(t, rune('.'), got.Horizontal)
	assert.Equal(t, rune(':'), got.Vertical)
}
