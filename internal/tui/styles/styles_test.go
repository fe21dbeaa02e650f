package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Inception", Truncate("Inception", 9))
	assert.Equal(t, "Incep…", Truncate("Inception", 6))
	assert.Equal(t, "I", Truncate("Inception", 1))
	assert.Empty(t, Truncate("Inception", 0))

	// Wide runes count as two cells
	got := Truncate("千と千尋の神隠し", 7)
	assert.LessOrEqual(t, lipgloss.Width(got), 7)
	assert.Contains(t, got, "…")
}

func TestRenderListRow_PadsToWidth(t *testing.T) {
	parts := []RowPart{{Text: "★ "}, {Text: "Up"}}
	for _, selected := range []bool{false, true} {
		assert.Equal(t, 20, lipgloss.Width(RenderListRow(parts, selected, 20)))
	}
}
