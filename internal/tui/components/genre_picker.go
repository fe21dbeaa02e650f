package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const (
	genrePickerRows  = 10
	genrePickerWidth = 30
)

// GenrePicker is a modal list of catalog genres
type GenrePicker struct {
	visible bool
	genres  []domain.Genre
	cursor  int
	offset  int
}

// NewGenrePicker creates a hidden picker
func NewGenrePicker() GenrePicker {
	return GenrePicker{}
}

// Show opens the picker with the cursor on selectedID (first genre if absent)
func (p *GenrePicker) Show(genres []domain.Genre, selectedID int) {
	p.visible = true
	p.genres = genres
	p.cursor = 0
	for i, g := range genres {
		if g.ID == selectedID {
			p.cursor = i
			break
		}
	}
	p.offset = 0
	p.scroll()
}

// Hide dismisses the picker
func (p *GenrePicker) Hide() {
	p.visible = false
}

// IsVisible reports whether the picker is open
func (p GenrePicker) IsVisible() bool {
	return p.visible
}

// Selected returns the genre under the cursor
func (p GenrePicker) Selected() (domain.Genre, bool) {
	if p.cursor < 0 || p.cursor >= len(p.genres) {
		return domain.Genre{}, false
	}
	return p.genres[p.cursor], true
}

// Update moves the cursor. The bool is true when a genre was picked.
func (p GenrePicker) Update(msg tea.Msg) (GenrePicker, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !p.visible || !ok {
		return p, false
	}

	switch keyMsg.String() {
	case "j", "down":
		p.cursor = min(p.cursor+1, len(p.genres)-1)
	case "k", "up":
		p.cursor = max(p.cursor-1, 0)
	case "g", "home":
		p.cursor = 0
	case "G", "end":
		p.cursor = len(p.genres) - 1
	case "enter":
		_, ok := p.Selected()
		return p, ok
	case "esc", "q":
		p.Hide()
	}
	p.cursor = max(p.cursor, 0)
	p.scroll()
	return p, false
}

func (p *GenrePicker) scroll() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+genrePickerRows {
		p.offset = p.cursor - genrePickerRows + 1
	}
}

// View renders the picker, or nothing when hidden
func (p GenrePicker) View() string {
	if !p.visible {
		return ""
	}

	rows := []string{styles.ModalTitleStyle.Render("Genres")}
	if len(p.genres) == 0 {
		rows = append(rows, styles.DimStyle.Render("No genres"))
	}
	end := min(p.offset+genrePickerRows, len(p.genres))
	for i := p.offset; i < end; i++ {
		parts := []styles.RowPart{{Text: p.genres[i].Name}}
		rows = append(rows, styles.RenderListRow(parts, i == p.cursor, genrePickerWidth))
	}
	if end < len(p.genres) {
		rows = append(rows, styles.DimStyle.Render(" ↓ more"))
	}

	rows = append(rows, "",
		styles.HelpKeyStyle.Render("enter")+styles.HelpDescStyle.Render(" browse  ")+
			styles.HelpKeyStyle.Render("esc")+styles.HelpDescStyle.Render(" cancel"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
