package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector displays metadata for the selected movie or series
type Inspector struct {
	entry     domain.FavoriteEntry
	details   interface{} // *domain.MovieDetails or *domain.SeriesDetails for entry
	similar   []domain.FavoriteEntry
	favorite  bool
	posterURL string

	width      int
	height     int
	offset     int
	maxVisible int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetEntry sets the entry to display. Details for a different entry are dropped.
func (i *Inspector) SetEntry(entry domain.FavoriteEntry) {
	if entry == nil || i.entry == nil || entry.GetID() != i.entry.GetID() || entry.Kind() != i.entry.Kind() {
		i.details = nil
		i.similar = nil
		i.offset = 0
	}
	i.entry = entry
}

// Entry returns the displayed entry
func (i Inspector) Entry() domain.FavoriteEntry {
	return i.entry
}

// SetDetails attaches fetched details and recommendations if they belong
// to the displayed entry
func (i *Inspector) SetDetails(details interface{}, similar []domain.FavoriteEntry) {
	if i.entry == nil {
		return
	}
	switch d := details.(type) {
	case *domain.MovieDetails:
		if i.entry.Kind() != domain.KindMovie || d.ID != i.entry.GetID() {
			return
		}
		i.details = d
	case *domain.SeriesDetails:
		if i.entry.Kind() != domain.KindSeries || d.ID != i.entry.GetID() {
			return
		}
		i.details = d
	default:
		return
	}
	i.similar = similar
}

// Similar returns the recommendations for the displayed entry
func (i Inspector) Similar() []domain.FavoriteEntry {
	return i.similar
}

// HasDetails reports whether details are loaded for the displayed entry
func (i Inspector) HasDetails() bool {
	return i.details != nil
}

// SetFavorite sets whether the displayed entry is in My List
func (i *Inspector) SetFavorite(favorite bool) {
	i.favorite = favorite
}

// SetPosterURL sets the poster link shown in the footer
func (i *Inspector) SetPosterURL(url string) {
	i.posterURL = url
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Reserve border, scroll indicators, title and blank line
	i.maxVisible = height - InspectorBorderHeight - InspectorScrollIndicators - 2
	if i.maxVisible < 1 {
		i.maxVisible = 1
	}
}

// View renders the inspector panel
func (i Inspector) View() string {
	style := styles.InactiveBorder

	contentWidth := i.width - 3
	if contentWidth < 10 {
		contentWidth = 10
	}
	content := i.render(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Info", contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := i.maxVisible - len(headerLines) - len(footerLines)
	if availableForBody < 1 {
		availableForBody = 1
	}

	maxOffset := len(bodyLines) - availableForBody
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := i.offset
	if offset > maxOffset {
		offset = maxOffset
	}
	end := offset + availableForBody
	if end > len(bodyLines) {
		end = len(bodyLines)
	}
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if content.header != "" {
		parts = append(parts, content.header)
	}
	parts = append(parts, up)
	if len(visibleBody) > 0 {
		parts = append(parts, strings.Join(visibleBody, "\n"))
	}
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if content.footer != "" {
		parts = append(parts, content.footer)
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) render(width int) inspectorContent {
	if i.entry == nil {
		return inspectorContent{body: styles.DimStyle.Render("Nothing selected")}
	}
	return inspectorContent{
		header: i.renderHeader(width),
		body:   i.renderBody(width),
		footer: i.renderFooter(width),
	}
}

func (i Inspector) renderHeader(width int) string {
	var b strings.Builder
	info := i.entry.Info()

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(info.Title, width)))
	b.WriteString("\n")

	// Meta line: Year · Kind · Runtime/Seasons
	var meta []string
	if year := info.Year(); year > 0 {
		meta = append(meta, fmt.Sprintf("%d", year))
	}
	if i.entry.Kind() == domain.KindSeries {
		meta = append(meta, "Series")
	} else {
		meta = append(meta, "Movie")
	}
	switch d := i.details.(type) {
	case *domain.MovieDetails:
		if d.Runtime > 0 {
			meta = append(meta, fmt.Sprintf("%dh %02dm", d.Runtime/60, d.Runtime%60))
		}
	case *domain.SeriesDetails:
		if d.NumberOfSeasons > 0 {
			meta = append(meta, pluralize(d.NumberOfSeasons, "season"))
		}
	}
	b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	var status []string
	if info.VoteAverage > 0 {
		text := fmt.Sprintf("★ %.1f", info.VoteAverage)
		var ratingStyle lipgloss.Style
		switch {
		case info.VoteAverage >= 7:
			ratingStyle = styles.SuccessStyle
		case info.VoteAverage >= 5:
			ratingStyle = styles.RatingStyle
		default:
			ratingStyle = styles.ErrorStyle
		}
		status = append(status, ratingStyle.Render(text))
	}
	if i.favorite {
		status = append(status, styles.AccentStyle.Render(styles.FavoriteChar+" In My List"))
	} else {
		status = append(status, styles.DimStyle.Render(styles.NotFavoriteChar+" Not in My List"))
	}
	b.WriteString(strings.Join(status, "   "))

	return b.String()
}

func (i Inspector) renderBody(width int) string {
	bodyWidth := width - 2
	if bodyWidth > 80 {
		bodyWidth = 80
	}

	var sections []string

	switch d := i.details.(type) {
	case *domain.MovieDetails:
		if d.Tagline != "" {
			sections = append(sections, styles.AccentStyle.Render(wordWrap(d.Tagline, bodyWidth)))
		}
		if names := genreNames(d.Genres); names != "" {
			sections = append(sections, styles.DimStyle.Render(wordWrap(names, bodyWidth)))
		}
	case *domain.SeriesDetails:
		if names := genreNames(d.Genres); names != "" {
			sections = append(sections, styles.DimStyle.Render(wordWrap(names, bodyWidth)))
		}
	}

	if overview := i.entry.Info().Overview; overview != "" {
		sections = append(sections, styles.SubtitleStyle.Render(wordWrap(overview, bodyWidth)))
	} else {
		sections = append(sections, styles.DimStyle.Render("No overview"))
	}

	if len(i.similar) > 0 {
		sections = append(sections, i.renderSimilar(bodyWidth))
	}

	return strings.Join(sections, "\n\n")
}

func (i Inspector) renderFooter(width int) string {
	var lines []string

	switch d := i.details.(type) {
	case *domain.MovieDetails:
		if d.Status != "" {
			lines = append(lines, styles.DimStyle.Render("Status  ")+d.Status)
		}
		if d.Budget > 0 {
			lines = append(lines, styles.DimStyle.Render("Budget  ")+fmt.Sprintf("$%d", d.Budget))
		}
	case *domain.SeriesDetails:
		if d.Status != "" {
			lines = append(lines, styles.DimStyle.Render("Status  ")+d.Status)
		}
		if d.NumberOfEpisodes > 0 {
			lines = append(lines, styles.DimStyle.Render("Episodes ")+fmt.Sprintf("%d", d.NumberOfEpisodes))
		}
	}
	if i.posterURL != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(i.posterURL, width)))
	}

	if len(lines) == 0 {
		return ""
	}
	separator := styles.DimStyle.Render(strings.Repeat("─", width))
	return separator + "\n" + strings.Join(lines, "\n")
}

const maxSimilar = 5

func (i Inspector) renderSimilar(width int) string {
	lines := []string{styles.TitleStyle.Render("MORE LIKE THIS")}
	for n, e := range i.similar {
		if n == maxSimilar {
			lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("  +%d more", len(i.similar)-maxSimilar)))
			break
		}
		line := "  " + styles.Truncate(e.GetTitle(), max(width-9, 1))
		if year := e.Info().Year(); year > 0 {
			line += styles.DimStyle.Render(fmt.Sprintf(" %d", year))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func genreNames(genres []domain.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, " · ")
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// splitLines splits a string into lines, returning empty slice for empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for i, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
