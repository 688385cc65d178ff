package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/parley/internal/presentation/tui"
	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)

	out := buf.String()
	assert.Contains(t, out, `|___/`)
	assert.NotContains(t, out, "\x1b[", "a buffer is not a terminal")
}

func TestNewRenderer(t *testing.T) {
	render, err := tui.NewRenderer(glamour.WithStandardStyle("notty"), glamour.WithWordWrap(80))
	require.NoError(t, err)

	out, err := render("Hello, **traveler**!")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello,")
	assert.Contains(t, out, "traveler")
}
