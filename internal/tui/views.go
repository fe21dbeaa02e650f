package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateSearching {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SearchModal.View())
	}

	if m.State == StatePickingGenre {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.GenrePicker.View())
	}

	panes := []string{m.Sidebar.View(), m.List.View()}
	if m.ShowInspector {
		panes = append(panes, m.Inspector.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderBanner(),
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		m.renderFooter(),
	)
}

// renderBanner renders the featured movie line
func (m Model) renderBanner() string {
	if m.Home == nil || m.Home.Featured == nil {
		return styles.AccentStyle.Render(" REEL")
	}

	f := m.Home.Featured
	text := " " + styles.BadgeStyle.Render("FEATURED") + " " + styles.TitleStyle.Render(f.Title)
	if year := f.Year(); year > 0 {
		text += styles.DimStyle.Render(fmt.Sprintf(" (%d)", year))
	}
	if f.VoteAverage > 0 {
		text += "  " + styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", f.VoteAverage))
	}
	if m.Favorites.IsFavorite(f.ID) {
		text += "  " + styles.FavoriteMark
	}
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(text)
}

// renderFooter renders the status line
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Loading:
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center: context hints
	var center string
	if m.current == components.SectionMyList {
		center = styles.AccentStyle.Render("x") + styles.DimStyle.Render(" Remove")
	} else {
		center = styles.AccentStyle.Render("f") + styles.DimStyle.Render(" My List")
	}
	if m.Favorites.Degraded() {
		center += "  " + styles.DimBadgeStyle.Render("not saving")
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen from the key map, two groups per row
func (m Model) renderHelp() string {
	groups := Keys.groups()

	blocks := make([]string, 0, len(groups))
	for _, g := range groups {
		lines := []string{styles.TitleStyle.Render(g.Title)}
		for _, b := range g.Bindings {
			h := b.Help()
			lines = append(lines, "  "+styles.HelpKeyStyle.Width(10).Render(h.Key)+styles.HelpDescStyle.Render(h.Desc))
		}
		blocks = append(blocks, lipgloss.NewStyle().Width(32).Render(strings.Join(lines, "\n")))
	}

	var rows []string
	for i := 0; i < len(blocks); i += 2 {
		pair := blocks[i:min(i+2, len(blocks))]
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, pair...), "")
	}
	rows = append(rows, styles.DimStyle.Render("Press any key to return..."))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
