package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalColumnsFallsBackToColumnsEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	assert.Equal(t, 132, TerminalColumns(nil))
}

func TestTerminalColumnsFallsBackToEightyWithoutEnv(t *testing.T) {
	t.Setenv("COLUMNS", "")
	assert.Equal(t, 80, TerminalColumns(nil))
}

func TestTerminalColumnsIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("COLUMNS", "not-a-number")
	assert.Equal(t, 80, TerminalColumns(nil))
}

func TestIsTerminalFalseForNilFile(t *testing.T) {
	assert.False(t, IsTerminal(nil))
}
