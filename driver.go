package ink

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"
)

// frameRateWindow is the frame driver's leading+trailing-edge rate
// limit window (spec.md §4.H).
const frameRateWindow = 32 * time.Millisecond

// FrameDriver owns one output stream's terminal state: the last
// emitted frame (for byte-identical-skip), the line count of that
// frame (for in-place erase), and the rate limiter gating flushes.
// Grounded on screen.go's Screen type, trimmed to the subset spec.md
// §4.H actually requires: no per-cell diffing, just whole-region
// erase-and-redraw.
type FrameDriver struct {
	out io.Writer

	mu          sync.Mutex
	lastFrame   string
	lastLines   int
	staticLines []string // accumulated static-region output, never erased
	mounted     bool

	limiter *rateLimiter
	pending string
	hasNext bool
}

var (
	registryMu sync.Mutex
	registry   = map[io.Writer]*FrameDriver{}
)

// Mount registers a FrameDriver for out and returns it, or returns
// the already-registered driver for that stream (spec.md §4.H
// per-output-stream driver registry).
func Mount(out io.Writer) *FrameDriver {
	registryMu.Lock()
	defer registryMu.Unlock()
	if d, ok := registry[out]; ok {
		return d
	}
	d := &FrameDriver{out: out, mounted: true}
	d.limiter = newRateLimiter(frameRateWindow, d.flush)
	registry[out] = d
	return d
}

// Unmount unregisters the driver and leaves the terminal content
// in place (spec.md §6 "no cursor-hide/show or alternate-screen
// management" — unmount is purely bookkeeping here).
func (d *FrameDriver) Unmount() {
	registryMu.Lock()
	defer registryMu.Unlock()
	d.limiter.Stop()
	d.mu.Lock()
	d.mounted = false
	d.mu.Unlock()
	delete(registry, d.out)
}

// Render submits a new frame for display, subject to the rate
// limiter. frame is the fully composited string (Composite's first
// return value); lines is its line count.
func (d *FrameDriver) Render(frame string, lines int) {
	d.mu.Lock()
	d.pending = frame
	d.hasNext = true
	d.mu.Unlock()
	d.limiter.Request()
	_ = lines // line count is recomputed from pending at flush time
}

// flush is called by the rate limiter on the leading or trailing
// edge. It skips the write entirely when the pending frame is
// byte-identical to the last emitted one (spec.md §4.H idempotence).
func (d *FrameDriver) flush() {
	d.mu.Lock()
	if !d.hasNext || !d.mounted {
		d.mu.Unlock()
		return
	}
	frame := d.pending
	d.hasNext = false
	d.mu.Unlock()

	if frame == d.lastFrame {
		diag("frame driver: skip, byte-identical")
		return
	}

	d.writeFrame(frame)
}

// writeFrame performs the in-place erase/redraw protocol: move the
// cursor up from the last line of the previously rendered region
// (where the previous write left it) to its top, erase and
// redraw each line, then record the new frame and line count.
// Grounded on screen.go's FlushInline (\r\x1b[K erase-and-redraw,
// cursor-up-by-N to return to the top), adapted to whole-region
// erase/redraw rather than per-cell diffing.
func (d *FrameDriver) writeFrame(frame string) {
	var b strings.Builder
	if d.lastLines > 0 {
		b.WriteString(cursorUp(d.lastLines - 1))
	}
	lines := strings.Split(frame, "\n")
	for i, line := range lines {
		b.WriteString("\r")
		b.WriteString(eraseLine)
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	io.WriteString(d.out, b.String())

	d.mu.Lock()
	d.lastFrame = frame
	d.lastLines = len(lines)
	d.mu.Unlock()
}

const eraseLine = "\x1b[K"

func cursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + strconv.Itoa(n) + "A"
}

// Attach installs root's commit hooks (spec.md §4.E, §4.H) so that
// ResetAfterCommit drives this driver directly: an ordinary commit
// goes through the rate limiter via OnRender, compositing with
// skipStatic=true so static regions are left untouched; a commit that
// mutated a static subtree goes through OnImmediateRender instead,
// which bypasses the rate limiter entirely.
func (d *FrameDriver) Attach(root *Node) {
	root.OnRender = func() {
		frame, lines := Composite(root, true)
		d.Render(frame, lines)
	}
	root.OnImmediateRender = func() {
		d.flushImmediateStatic(root)
	}
}

// flushImmediateStatic implements spec.md §4.H's on_immediate_render
// and §5's ordering guarantee ("static content is always drawn in
// strictly increasing append order and never overwritten"): it
// extracts the current static region's lines straight from root's
// composite (skipStatic=false), prints only the lines appended since
// the last immediate render above the dynamic region, then redraws
// the dynamic region fresh — both steps unconditional, bypassing the
// rate limiter. Grounded on the prior RenderStatic's cursor-dance
// (screen.go's FlushInline), now driven off the real static-marked
// subtree instead of caller-supplied strings disconnected from it.
func (d *FrameDriver) flushImmediateStatic(root *Node) {
	full, _ := Composite(root, false)
	lines := strings.Split(full, "\n")

	d.mu.Lock()
	committed := len(d.staticLines)
	priorLines := d.lastLines
	d.mu.Unlock()

	var fresh []string
	for _, r := range staticLineRanges(root) {
		for y := r[0]; y < r[1] && y < len(lines); y++ {
			fresh = append(fresh, lines[y])
		}
	}
	if len(fresh) > committed {
		newLines := fresh[committed:]
		if priorLines > 0 {
			io.WriteString(d.out, cursorUp(priorLines-1))
		}
		for _, l := range newLines {
			fmt.Fprintln(d.out, "\r"+eraseLine+l)
		}
		d.mu.Lock()
		d.staticLines = fresh
		d.lastLines = 0
		d.lastFrame = ""
		d.mu.Unlock()
	}

	dynFrame, _ := Composite(root, true)
	d.writeFrame(dynFrame)
}

// staticLineRanges returns the root-relative row ranges [start, end)
// covered by each of root's direct children marked static (spec.md
// §3's static attribute), in document order.
func staticLineRanges(root *Node) [][2]int {
	var ranges [][2]int
	for _, c := range root.Children() {
		if isStatic(c) && c.layout != nil {
			ranges = append(ranges, [2]int{c.layout.Y, c.layout.Y + c.layout.H})
		}
	}
	return ranges
}

// Resize notifies the driver that the terminal size changed,
// invalidating the byte-identical cache so the next Render performs
// a full repaint (spec.md §9 open question 2's resolution: resize
// invalidates the last-emitted-bytes cache and forces a full
// repaint on the next on_render).
func (d *FrameDriver) Resize() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastFrame = ""
}

// WatchResize subscribes to the terminal's resize signal on f (when f
// is a terminal) and calls onResize on every change, returning a
// function that cancels the subscription. No-op, returning a no-op
// canceller, when f is not a terminal (spec.md §6 downstream contract).
func WatchResize(f *os.File, onResize func()) (cancel func()) {
	if !IsTerminal(f) {
		return func() {}
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				onResize()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
