package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const searchModalWidth = 40

// InputModal is the catalog search prompt. Enter on a blank query keeps it
// open instead of submitting.
type InputModal struct {
	visible bool
	title   string
	hint    string
	input   textinput.Model
}

// NewInputModal creates a hidden search prompt
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.Placeholder = "Movies, series..."
	ti.CharLimit = 100
	ti.Width = searchModalWidth - 4
	ti.Prompt = "› "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{input: ti}
}

// Show opens the prompt prefilled with value
func (m *InputModal) Show(title, value string) {
	m.visible = true
	m.title = title
	m.hint = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// Hide dismisses the prompt
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible reports whether the prompt is open
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the query without surrounding spaces
func (m InputModal) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Update returns the updated modal and whether a non-blank query was submitted
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			if m.Value() == "" {
				m.hint = "Type a title to search"
				return m, nil, false
			}
			return m, nil, true
		case tea.KeyEsc:
			m.Hide()
			return m, nil, false
		}
	}

	m.hint = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the prompt, or nothing when hidden
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	footer := styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" search  ") +
		styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel")
	if m.hint != "" {
		footer = styles.ErrorStyle.Render(m.hint)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		m.input.View(),
		"",
		footer,
	)
	return styles.ModalStyle.Width(searchModalWidth).Render(body)
}
