package ink

import (
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// TerminalColumns discovers the output stream's column count the way
// the downstream half of spec.md §6 describes: an ioctl query via
// golang.org/x/term when the stream is a terminal, falling back to
// the COLUMNS environment variable, then a hardcoded 80.
func TerminalColumns(f *os.File) int {
	if f != nil && isatty.IsTerminal(f.Fd()) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 80
}

// IsTerminal reports whether f is an interactive terminal, gating
// whether the frame driver subscribes to resize notifications at all
// (spec.md §6: resize is a terminal-only concept).
func IsTerminal(f *os.File) bool {
	return f != nil && isatty.IsTerminal(f.Fd())
}
