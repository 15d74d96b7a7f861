package ink

import (
	"container/list"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Measure returns the rendered width and height, in cells, that text
// would occupy when wrapped to maxWidth under mode (spec.md §4.B).
// maxWidth <= 0 means unbounded: no wrapping, one line per
// newline-separated paragraph, each at its natural width.
func Measure(text string, maxWidth int, mode TextWrapMode) (width, height int) {
	if text == "" {
		return 0, 0
	}
	if cached, ok := measureCache.get(measureKey{text, maxWidth, mode}); ok {
		return cached.width, cached.height
	}
	lines := Render(text, maxWidth, mode)
	w := 0
	for _, l := range lines {
		if lw := VisibleWidth(l); lw > w {
			w = lw
		}
	}
	res := measureResult{width: w, height: len(lines)}
	measureCache.put(measureKey{text, maxWidth, mode}, res)
	return res.width, res.height
}

// Render wraps or truncates text to maxWidth under mode and returns
// the resulting lines. maxWidth <= 0 returns the input split on "\n"
// with no wrapping or truncation applied.
func Render(text string, maxWidth int, mode TextWrapMode) []string {
	if text == "" {
		return nil
	}
	paragraphs := strings.Split(text, "\n")
	if maxWidth <= 0 {
		return paragraphs
	}
	var out []string
	for _, p := range paragraphs {
		switch mode {
		case TruncateEnd, TruncateStart, TruncateMiddle:
			out = append(out, truncateLine(p, maxWidth, mode))
		default:
			out = append(out, wrapParagraph(p, maxWidth)...)
		}
	}
	return out
}

// wrapParagraph greedily wraps p on grapheme-cluster boundaries so a
// line never exceeds maxWidth visible columns, breaking on whitespace
// when possible and falling back to a hard break mid-word only when a
// single word exceeds maxWidth on its own.
func wrapParagraph(p string, maxWidth int) []string {
	if p == "" {
		return []string{""}
	}
	words := strings.Fields(p)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range words {
		wordWidth := VisibleWidth(word)
		if wordWidth > maxWidth {
			if cur.Len() > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
				curWidth = 0
			}
			lines = append(lines, hardBreak(word, maxWidth)...)
			continue
		}
		sep := 0
		if cur.Len() > 0 {
			sep = 1
		}
		if curWidth+sep+wordWidth > maxWidth {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
			sep = 0
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += wordWidth
	}
	if cur.Len() > 0 || len(lines) == 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// hardBreak splits a single overlong token on grapheme boundaries.
func hardBreak(word string, maxWidth int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		rs := g.Runes()
		w := runewidth.StringWidth(string(rs))
		if curWidth+w > maxWidth && cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteString(string(rs))
		curWidth += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// truncateLine shortens line to fit maxWidth, inserting an ellipsis
// at the end, start, or middle per mode, preserving any active ANSI
// style at the cut point via Slice.
func truncateLine(line string, maxWidth int, mode TextWrapMode) string {
	const ellipsis = "…"
	w := VisibleWidth(line)
	if w <= maxWidth {
		return line
	}
	if maxWidth <= 0 {
		return ""
	}
	if maxWidth == 1 {
		return ellipsis
	}
	switch mode {
	case TruncateStart:
		return ellipsis + Slice(line, w-(maxWidth-1), w)
	case TruncateMiddle:
		left := (maxWidth - 1) / 2
		right := maxWidth - 1 - left
		return Slice(line, 0, left) + ellipsis + Slice(line, w-right, w)
	default: // TruncateEnd
		return Slice(line, 0, maxWidth-1) + ellipsis
	}
}

type measureKey struct {
	text     string
	maxWidth int
	mode     TextWrapMode
}

type measureResult struct {
	width, height int
}

// boundedLRU is a small fixed-capacity memoization cache for Measure,
// grounded in the teacher's general avoidance of per-frame allocation
// in hot paths (arena.go, buffer_pool.go) even though the teacher has
// no measurer of its own.
type boundedLRU struct {
	mu       sync.Mutex
	capacity int
	entries  map[measureKey]*list.Element
	order    *list.List // front = most recently used
}

type lruEntry struct {
	key   measureKey
	value measureResult
}

func newBoundedLRU(capacity int) *boundedLRU {
	return &boundedLRU{
		capacity: capacity,
		entries:  make(map[measureKey]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *boundedLRU) get(key measureKey) (measureResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return measureResult{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

func (c *boundedLRU) put(key measureKey, value measureResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry).value = value
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&lruEntry{key: key, value: value})
	c.entries[key] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*lruEntry).key)
		}
	}
}

const defaultMeasureCacheSize = 256

var measureCache = newBoundedLRU(defaultMeasureCacheSize)
