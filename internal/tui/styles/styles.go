package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Color palette
var (
	ReelRed    = lipgloss.Color("#E50914")
	SlateDark  = lipgloss.Color("#141414")
	SlateLight = lipgloss.Color("#2F2F2F")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#B3B3B3")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#46D369")
	Yellow     = lipgloss.Color("#F5C518")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ReelRed)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ReelRed)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ReelRed).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Yellow)
)

// Raw favorite marker characters (unstyled)
const (
	FavoriteChar    = "★"
	NotFavoriteChar = "☆"
)

// Pre-rendered favorite marker
var FavoriteMark = AccentStyle.Render(FavoriteChar)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ReelRed).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ReelRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(ReelRed).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ReelRed)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(ReelRed)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(ReelRed).
				Bold(true)
)

// Truncate shortens s to width display cells, ending in an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return ansi.Truncate(s, 1, "")
	}
	return ansi.Truncate(s, width, "…")
}

// RowPart is one segment of a list row. Nil Foreground takes the row color.
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow joins parts into a row padded to width with a one cell
// margin on each side. Parts are rendered one by one so each keeps its
// color under the selection background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	base := lipgloss.NewStyle().Foreground(LightGray)
	if selected {
		base = base.Foreground(White).Background(SlateLight)
	}

	var b strings.Builder
	b.WriteString(base.Render(" "))
	used := 0
	for _, p := range parts {
		st := base
		if p.Foreground != nil {
			st = st.Foreground(*p.Foreground)
		}
		b.WriteString(st.Render(p.Text))
		used += lipgloss.Width(p.Text)
	}
	if pad := width - used - 1; pad > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", pad)))
	}
	return b.String()
}
