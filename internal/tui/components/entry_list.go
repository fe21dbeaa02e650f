package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for list panels
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// EntryList is a scrollable, filterable list of movies and series.
type EntryList struct {
	entries []domain.FavoriteEntry
	index   *search.Index

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading / empty state
	loading     bool
	loadingView string // Rendered spinner frame
	emptyText   string

	// Reports whether an id is in My List; nil hides the marker column
	isFavorite func(id int) bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filtered     []search.Result // nil when no query
}

// NewEntryList creates an empty list with the given title
func NewEntryList(title string) *EntryList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &EntryList{
		title:       title,
		emptyText:   "No titles",
		filterInput: ti,
		index:       search.NewIndex(nil),
	}
}

func (c *EntryList) Init() tea.Cmd {
	return nil
}

func (c *EntryList) Update(msg tea.Msg) (*EntryList, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				c.clearFilter()
				return c, nil
			case "enter":
				// Keep results, hand keys back to navigation
				c.filterInput.Blur()
				return c, nil
			case "backspace":
				if c.filterInput.Value() == "" {
					c.clearFilter()
					return c, nil
				}
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	if c.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				c.clearFilter()
				return c, nil
			case "/":
				c.filterInput.Focus()
				return c, nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			if c.cursor < count-1 {
				c.cursor++
				c.ensureVisible()
			}
		case "k", "up":
			if c.cursor > 0 {
				c.cursor--
				c.ensureVisible()
			}
		case "g", "home":
			c.cursor = 0
			c.offset = 0
		case "G", "end":
			c.cursor = count - 1
			c.ensureVisible()
		case "ctrl+d":
			c.cursor += c.maxVisible / 2
			if c.cursor >= count {
				c.cursor = count - 1
			}
			c.ensureVisible()
		case "ctrl+u":
			c.cursor -= c.maxVisible / 2
			if c.cursor < 0 {
				c.cursor = 0
			}
			c.ensureVisible()
		}
	}

	return c, nil
}

func (c *EntryList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(c.renderContent())
}

func (c *EntryList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *EntryList) SetFocused(focused bool) {
	c.focused = focused
}

func (c *EntryList) IsFocused() bool {
	return c.focused
}

func (c *EntryList) Title() string {
	return c.title
}

func (c *EntryList) SetTitle(title string) {
	c.title = title
}

// SetEntries replaces the list content, resetting cursor and filter
func (c *EntryList) SetEntries(entries []domain.FavoriteEntry) {
	c.loading = false
	c.entries = entries
	c.index = search.NewIndex(entries)
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
}

// ReplaceEntries swaps the content but keeps the cursor near where it was.
// Used when My List changes under the user.
func (c *EntryList) ReplaceEntries(entries []domain.FavoriteEntry) {
	query := c.filterInput.Value()
	active, typing := c.filterActive, c.filterInput.Focused()
	cursor := c.cursor

	c.entries = entries
	c.index = search.NewIndex(entries)
	c.loading = false

	if active {
		c.filterActive = true
		if typing {
			c.filterInput.Focus()
		}
		c.filterInput.SetValue(query)
		c.applyFilter()
	}
	c.SetSelectedIndex(cursor)
}

// Entries returns the unfiltered content
func (c *EntryList) Entries() []domain.FavoriteEntry {
	return c.entries
}

func (c *EntryList) SetLoading(loading bool) {
	c.loading = loading
}

func (c *EntryList) IsLoading() bool {
	return c.loading
}

// SetLoadingView sets the spinner frame shown while loading
func (c *EntryList) SetLoadingView(view string) {
	c.loadingView = view
}

// SetEmptyText sets the message shown when there is nothing to list
func (c *EntryList) SetEmptyText(text string) {
	c.emptyText = text
}

// SetFavoriteCheck installs the My List lookup used for row markers
func (c *EntryList) SetFavoriteCheck(fn func(id int) bool) {
	c.isFavorite = fn
}

// SelectedEntry returns the entry under the cursor, or nil
func (c *EntryList) SelectedEntry() domain.FavoriteEntry {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return nil
	}
	if c.filtered != nil {
		return c.filtered[c.cursor].Entry
	}
	return c.entries[c.cursor]
}

func (c *EntryList) SelectedIndex() int {
	return c.cursor
}

func (c *EntryList) SetSelectedIndex(idx int) {
	max := c.ItemCount() - 1
	if max < 0 {
		c.cursor = 0
		c.offset = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > max {
		idx = max
	}
	c.cursor = idx
	if c.offset > c.cursor {
		c.offset = c.cursor
	}
	c.ensureVisible()
}

func (c *EntryList) ItemCount() int {
	if c.filtered != nil {
		return len(c.filtered)
	}
	return len(c.entries)
}

func (c *EntryList) IsEmpty() bool {
	return c.ItemCount() == 0
}

// ToggleFilter activates the filter input
func (c *EntryList) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *EntryList) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *EntryList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *EntryList) ClearFilter() {
	c.clearFilter()
}

// Internal methods

func (c *EntryList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *EntryList) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *EntryList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filtered = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *EntryList) applyFilter() {
	query := strings.TrimSpace(c.filterInput.Value())
	c.filterQuery = query

	if query == "" {
		c.filtered = nil
		return
	}

	c.filtered = c.index.Filter(query)
	c.cursor = 0
	c.offset = 0
}

// Rendering

func (c *EntryList) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading {
		loadingLine := styles.DimStyle.Render(strings.TrimSpace(c.loadingView + " Loading..."))
		return titleLine + "\n" + " " + "\n" + loadingLine + "\n" + " "
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(c.emptyText)
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		var (
			entry   domain.FavoriteEntry
			matched []int
		)
		if c.filtered != nil {
			entry = c.filtered[i].Entry
			matched = c.filtered[i].MatchedIndexes
		} else {
			entry = c.entries[i]
		}
		lines = append(lines, c.renderEntry(entry, matched, i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines to avoid layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *EntryList) renderEntry(entry domain.FavoriteEntry, matched []int, selected bool, width int) string {
	var parts []styles.RowPart

	used := 2 // margins
	if c.isFavorite != nil {
		marker, fg := styles.NotFavoriteChar, styles.DimGray
		if c.isFavorite(entry.GetID()) {
			marker, fg = styles.FavoriteChar, styles.ReelRed
		}
		parts = append(parts, styles.RowPart{Text: marker + " ", Foreground: &fg})
		used += 2
	}

	var suffix string
	if year := entry.Info().Year(); year > 0 {
		suffix = fmt.Sprintf(" (%d)", year)
	}
	badge := ""
	if entry.Kind() == domain.KindSeries {
		badge = " TV"
	}

	available := width - used - len(suffix) - len(badge)
	if available < 5 {
		available = 5
	}
	title := styles.Truncate(entry.GetTitle(), available)

	parts = append(parts, highlightParts(title, matched)...)
	if suffix != "" {
		dim := styles.DimGray
		parts = append(parts, styles.RowPart{Text: suffix, Foreground: &dim})
	}
	if badge != "" {
		red := styles.ReelRed
		parts = append(parts, styles.RowPart{Text: badge, Foreground: &red})
	}

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits title into runs so matched bytes render in the
// accent color.
func highlightParts(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	red := styles.ReelRed
	var (
		parts []styles.RowPart
		run   strings.Builder
		inHit bool
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		if inHit {
			part.Foreground = &red
		}
		parts = append(parts, part)
		run.Reset()
	}

	for i, r := range title {
		if hit[i] != inHit {
			flush()
			inHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

func (c *EntryList) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.entries)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, input, countStr)
}
