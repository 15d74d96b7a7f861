package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColorNamed(t *testing.T) {
	c, ok := ParseColor("Red")
	assert.True(t, ok)
	assert.Equal(t, Red, c)
}

func TestParseColorHex(t *testing.T) {
	c, ok := ParseColor("#ff8800")
	assert.True(t, ok)
	assert.Equal(t, RGB(0xff, 0x88, 0x00), c)
}

func TestParseColorRGBFunc(t *testing.T) {
	c, ok := ParseColor("rgb(10, 20, 30)")
	assert.True(t, ok)
	assert.Equal(t, RGB(10, 20, 30), c)
}

func TestParseColorHSLFunc(t *testing.T) {
	c, ok := ParseColor("hsl(0, 0%, 100%)")
	assert.True(t, ok)
	assert.Equal(t, RGB(255, 255, 255), c)
}

func TestParseColorMalformedReturnsFalse(t *testing.T) {
	_, ok := ParseColor("not-a-color")
	assert.False(t, ok)

	_, ok = ParseColor("rgb(1,2)")
	assert.False(t, ok)

	_, ok = ParseColor("#zzzzzz")
	assert.False(t, ok)
}

func TestDowngradeLeavesNonRGBUntouched(t *testing.T) {
	assert.Equal(t, Red, Downgrade(Red))
	assert.Equal(t, DefaultColor(), Downgrade(DefaultColor()))
}

func TestNearestPaletteIndexPicksExactMatch(t *testing.T) {
	black := RGB(0, 0, 0)
	idx := nearestPaletteIndex(black, ansi16Palette)
	assert.Equal(t, uint8(0), idx)
}
