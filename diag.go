package ink

import (
	"log"
	"os"
)

// diagLogger is gated by INK_DEBUG, the same env-var-gated
// fmt.Fprintf(os.Stderr, ...) pattern app.go/screen.go use under
// TUI_DEBUG_FLUSH, generalized to the standard library's log package
// so every diagnostic line carries a timestamp consistently.
var diagLogger *log.Logger

func init() {
	if os.Getenv("INK_DEBUG") != "" {
		diagLogger = log.New(os.Stderr, "ink: ", log.Lmicroseconds)
	}
}

// diag emits a debug line when INK_DEBUG is set and is otherwise a
// no-op with no formatting cost on the hot path.
func diag(format string, args ...any) {
	if diagLogger == nil {
		return
	}
	diagLogger.Printf(format, args...)
}
