package ink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameDriverSkipsByteIdenticalFrame(t *testing.T) {
	var buf bytes.Buffer
	d := Mount(&buf)
	defer d.Unmount()

	d.Render("hello", 1)
	time.Sleep(10 * time.Millisecond)
	firstLen := buf.Len()

	d.Render("hello", 1)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, firstLen, buf.Len())
}

func TestFrameDriverRewritesChangedFrame(t *testing.T) {
	var buf bytes.Buffer
	d := Mount(&buf)
	defer d.Unmount()

	d.Render("hello", 1)
	time.Sleep(10 * time.Millisecond)

	d.Render("world", 1)
	time.Sleep(50 * time.Millisecond)
	assert.Contains(t, buf.String(), "world")
}

func TestFrameDriverResizeForcesRepaint(t *testing.T) {
	var buf bytes.Buffer
	d := Mount(&buf)
	defer d.Unmount()

	d.Render("hello", 1)
	time.Sleep(10 * time.Millisecond)
	before := buf.Len()

	d.Resize()
	d.Render("hello", 1)
	time.Sleep(50 * time.Millisecond)
	assert.Greater(t, buf.Len(), before)
}

func TestMountReturnsSameDriverForSameStream(t *testing.T) {
	var buf bytes.Buffer
	d1 := Mount(&buf)
	d2 := Mount(&buf)
	require.Same(t, d1, d2)
	d1.Unmount()
}

func TestFrameDriverEraseRedrawProtocol(t *testing.T) {
	var buf bytes.Buffer
	d := Mount(&buf)
	defer d.Unmount()

	d.Render("a\nb", 2)
	time.Sleep(10 * time.Millisecond)
	d.Render("c\nd", 2)
	time.Sleep(50 * time.Millisecond)

	out := buf.String()
	assert.True(t, strings.Contains(out, "\x1b[2A") || strings.Contains(out, "\x1b[K"))
}
