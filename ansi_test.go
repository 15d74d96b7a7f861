package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSGRCodeOrderMatchesSpec(t *testing.T) {
	s := TextStyle{
		FG:   Red,
		BG:   Blue,
		Attr: AttrDim | AttrBold | AttrItalic | AttrUnderline | AttrStrike | AttrInverse,
	}
	// dim, fg, bg, bold, italic, underline, strike, inverse
	assert.Equal(t, []string{"2", "31", "44", "1", "3", "4", "9", "7"}, sgrCodes(s))
}

func TestStyleUnstyledReturnsBareText(t *testing.T) {
	assert.Equal(t, "hello", StyleText("hello", TextStyle{}))
}

func TestStyleWrapsAndResets(t *testing.T) {
	out := StyleText("hi", TextStyle{FG: Red})
	assert.Equal(t, "\x1b[31mhi\x1b[0m", out)
}

func TestVisibleWidthIgnoresEscapes(t *testing.T) {
	styled := StyleText("hi", TextStyle{FG: Red})
	assert.Equal(t, 2, VisibleWidth(styled))
}

func TestVisibleWidthWideRunes(t *testing.T) {
	assert.Equal(t, 4, VisibleWidth("你好"))
}

func TestSliceReopensActiveStyle(t *testing.T) {
	styled := StyleText("hello", TextStyle{FG: Red})
	sliced := Slice(styled, 1, 3)
	assert.Equal(t, 2, VisibleWidth(sliced))
	assert.Contains(t, sliced, "el")
}

func TestSliceOfPlainText(t *testing.T) {
	assert.Equal(t, "ell", Slice("hello", 1, 4))
}

func TestFGCodeVariants(t *testing.T) {
	assert.Equal(t, "31", fgCode(Red))
	assert.Equal(t, "91", fgCode(BrightRed))
	assert.Equal(t, "38;5;200", fgCode(PaletteColor(200)))
	assert.Equal(t, "38;2;1;2;3", fgCode(RGB(1, 2, 3)))
	assert.Equal(t, "", fgCode(DefaultColor()))
}
