package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Section is one browsable row of the home screen
type Section int

const (
	SectionPopular Section = iota
	SectionTopRated
	SectionUpcoming
	SectionMyList
	SectionSearch
	SectionGenres
)

// AllSections lists the sections in sidebar order
var AllSections = []Section{
	SectionPopular,
	SectionTopRated,
	SectionUpcoming,
	SectionMyList,
	SectionSearch,
	SectionGenres,
}

func (s Section) String() string {
	switch s {
	case SectionPopular:
		return "Popular"
	case SectionTopRated:
		return "Top Rated"
	case SectionUpcoming:
		return "Upcoming"
	case SectionMyList:
		return "My List"
	case SectionSearch:
		return "Search"
	case SectionGenres:
		return "Genres"
	default:
		return "Unknown"
	}
}

// SectionItem implements list.Item for a section
type SectionItem struct {
	Section Section
	Count   int
	Loading bool
}

func (i SectionItem) FilterValue() string { return i.Section.String() }

func (i SectionItem) Title() string {
	switch {
	case i.Loading:
		return "… " + i.Section.String()
	case i.Count > 0:
		return fmt.Sprintf("  %s (%d)", i.Section, i.Count)
	default:
		return "  " + i.Section.String()
	}
}

func (i SectionItem) Description() string { return "" }

// Sidebar is the section selection sidebar
type Sidebar struct {
	list    list.Model
	focused bool
	width   int
	height  int

	counts  map[Section]int
	loading map[Section]bool
}

// NewSidebar creates a sidebar listing AllSections
func NewSidebar() Sidebar {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.White).
		Background(styles.SlateLight).
		Padding(0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Padding(0, 1)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Reel"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.ReelRed).
		Bold(true).
		Padding(0, 1)

	s := Sidebar{
		list:    l,
		counts:  make(map[Section]int),
		loading: make(map[Section]bool),
	}
	s.refreshItems()
	return s
}

// SetCount updates the item count shown next to a section
func (s *Sidebar) SetCount(section Section, count int) {
	s.counts[section] = count
	s.refreshItems()
}

// SetLoading marks a section as loading
func (s *Sidebar) SetLoading(section Section, loading bool) {
	s.loading[section] = loading
	s.refreshItems()
}

func (s *Sidebar) refreshItems() {
	items := make([]list.Item, len(AllSections))
	for i, sec := range AllSections {
		items[i] = SectionItem{
			Section: sec,
			Count:   s.counts[sec],
			Loading: s.loading[sec],
		}
	}
	s.list.SetItems(items)
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width-BorderWidth, height-BorderHeight)
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s Sidebar) IsFocused() bool {
	return s.focused
}

// Selected returns the highlighted section
func (s Sidebar) Selected() Section {
	item, ok := s.list.SelectedItem().(SectionItem)
	if !ok {
		return SectionPopular
	}
	return item.Section
}

// Select highlights section
func (s *Sidebar) Select(section Section) {
	for i, sec := range AllSections {
		if sec == section {
			s.list.Select(i)
			return
		}
	}
}

// Update handles messages
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			s.list.CursorDown()
		case "k", "up":
			s.list.CursorUp()
		case "g", "home":
			s.list.Select(0)
		case "G", "end":
			s.list.Select(len(s.list.Items()) - 1)
		}
	}

	return s, nil
}

// View renders the component
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(s.list.View())
}
