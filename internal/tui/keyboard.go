package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateSearching:
		return m.handleSearchInput(msg)

	case StatePickingGenre:
		return m.handleGenrePicker(msg)
	}

	// Filter input owns the keyboard while typing
	if m.Focus == PaneList && m.List.IsFilterTyping() {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		m.syncInspector()
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.List.IsFiltering() {
			m.List.ClearFilter()
			m.syncInspector()
		}
		return m, nil

	case key.Matches(msg, Keys.NextPane):
		if m.Focus == PaneSidebar {
			m.setFocus(PaneList)
		} else {
			m.setFocus(PaneSidebar)
		}
		return m, nil

	case key.Matches(msg, Keys.Left):
		m.setFocus(PaneSidebar)
		return m, nil

	case key.Matches(msg, Keys.Right):
		m.setFocus(PaneList)
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.setFocus(PaneList)
		m.List.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		m.SearchModal.Show("Search", m.searchQuery)
		return m, nil

	case key.Matches(msg, Keys.PickGenre):
		if len(m.genres) == 0 {
			m.Sidebar.Select(components.SectionGenres)
			m.showSection(components.SectionGenres)
			m.setFocus(PaneList)
			cmd := m.sectionCmd(components.SectionGenres)
			return m, cmd
		}
		m.State = StatePickingGenre
		m.GenrePicker.Show(m.genres, m.genre.ID)
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		if m.current == components.SectionGenres {
			if inv, ok := m.Catalog.(interface{ Invalidate() }); ok {
				inv.Invalidate()
			}
			if m.genre.ID == 0 {
				m.genresRequested = false
				cmd := m.sectionCmd(components.SectionGenres)
				return m, cmd
			}
			cmd := m.selectGenre(m.genre)
			return m, cmd
		}
		if m.current == components.SectionMyList || m.current == components.SectionSearch {
			m.refreshFavorites()
			return m, nil
		}
		if inv, ok := m.Catalog.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
		m.Loading = true
		for _, sec := range []components.Section{components.SectionPopular, components.SectionTopRated, components.SectionUpcoming} {
			m.Sidebar.SetLoading(sec, true)
		}
		return m, LoadHomeCmd(m.Catalog)

	case key.Matches(msg, Keys.ToggleFavorite):
		return m.toggleFavorite()

	case key.Matches(msg, Keys.Remove):
		return m.removeFavorite()

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m.handleEnter()
	}

	// Navigation goes to the focused pane
	if m.Focus == PaneSidebar {
		before := m.Sidebar.Selected()
		var cmd tea.Cmd
		m.Sidebar, cmd = m.Sidebar.Update(msg)
		if after := m.Sidebar.Selected(); after != before {
			m.showSection(after)
			cmd = tea.Batch(cmd, m.sectionCmd(after))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncInspector()
	return m, cmd
}

// handleEnter opens the highlighted section, or loads details for the
// highlighted title
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.Focus == PaneSidebar {
		sec := m.Sidebar.Selected()
		m.showSection(sec)
		m.setFocus(PaneList)
		cmd := m.sectionCmd(sec)
		return m, cmd
	}

	entry := m.List.SelectedEntry()
	if entry == nil || m.Inspector.HasDetails() {
		return m, nil
	}
	if !m.ShowInspector {
		m.ShowInspector = true
		m.updateLayout()
	}
	return m, LoadDetailsCmd(m.Catalog, entry)
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd       tea.Cmd
		submitted bool
	)
	m.SearchModal, cmd, submitted = m.SearchModal.Update(msg)

	if !m.SearchModal.IsVisible() {
		m.State = StateBrowsing
		return m, cmd
	}
	if !submitted {
		return m, cmd
	}

	query := m.SearchModal.Value()
	m.SearchModal.Hide()
	m.State = StateBrowsing
	m.Loading = true
	m.Sidebar.SetLoading(components.SectionSearch, true)
	return m, SearchCmd(m.Catalog, query)
}

func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	entry := m.List.SelectedEntry()
	if entry == nil {
		return m, nil
	}

	if m.Favorites.Toggle(entry) {
		m.StatusMsg = "Added " + entry.GetTitle() + " to My List"
	} else {
		m.StatusMsg = "Removed " + entry.GetTitle() + " from My List"
	}
	m.StatusIsErr = false
	m.refreshFavorites()
	return m, ClearStatusCmd(2 * time.Second)
}

func (m Model) removeFavorite() (tea.Model, tea.Cmd) {
	entry := m.List.SelectedEntry()
	if entry == nil || !m.Favorites.IsFavorite(entry.GetID()) {
		return m, nil
	}

	m.Favorites.Remove(entry.GetID())
	m.StatusMsg = "Removed " + entry.GetTitle() + " from My List"
	m.StatusIsErr = false
	m.refreshFavorites()
	return m, ClearStatusCmd(2 * time.Second)
}

func (m Model) handleGenrePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var picked bool
	m.GenrePicker, picked = m.GenrePicker.Update(msg)
	if !picked {
		if !m.GenrePicker.IsVisible() {
			m.State = StateBrowsing
		}
		return m, nil
	}

	genre, _ := m.GenrePicker.Selected()
	m.GenrePicker.Hide()
	m.State = StateBrowsing
	m.Sidebar.Select(components.SectionGenres)
	m.showSection(components.SectionGenres)
	m.setFocus(PaneList)
	cmd := m.selectGenre(genre)
	return m, cmd
}
