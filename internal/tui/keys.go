package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings. Pane-local motion (j/k, g/G, C-u/C-d) is
// handled by the components; it is listed here so the help screen shows it.
type KeyMap struct {
	Up, Down        key.Binding
	Left, Right     key.Binding
	HalfPage        key.Binding
	Ends            key.Binding
	NextPane        key.Binding
	Enter           key.Binding
	Quit            key.Binding
	Help            key.Binding
	Escape          key.Binding
	Filter          key.Binding
	Search          key.Binding
	PickGenre       key.Binding
	Refresh         key.Binding
	ToggleFavorite  key.Binding
	Remove          key.Binding
	ToggleInspector key.Binding
}

func bind(keys []string, help, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:              bind([]string{"k", "up"}, "k/↑", "Up"),
		Down:            bind([]string{"j", "down"}, "j/↓", "Down"),
		Left:            bind([]string{"h", "left"}, "h/←", "Sections"),
		Right:           bind([]string{"l", "right"}, "l/→", "Titles"),
		HalfPage:        bind([]string{"ctrl+u", "ctrl+d"}, "C-u/C-d", "Half page"),
		Ends:            bind([]string{"g", "G", "home", "end"}, "g/G", "First/last item"),
		NextPane:        bind([]string{"tab"}, "Tab", "Switch pane"),
		Enter:           bind([]string{"enter"}, "Enter", "Load details"),
		Quit:            bind([]string{"q", "ctrl+c"}, "q", "Quit"),
		Help:            bind([]string{"?"}, "?", "This help"),
		Escape:          bind([]string{"esc"}, "Esc", "Clear filter"),
		Filter:          bind([]string{"/"}, "/", "Filter"),
		Search:          bind([]string{"s"}, "s", "Search"),
		PickGenre:       bind([]string{"c"}, "c", "Pick genre"),
		Refresh:         bind([]string{"r"}, "r", "Refresh"),
		ToggleFavorite:  bind([]string{"f", " "}, "f/Space", "Add or remove"),
		Remove:          bind([]string{"x", "d"}, "x", "Remove"),
		ToggleInspector: bind([]string{"i"}, "i", "Toggle inspector"),
	}
}

type helpGroup struct {
	Title    string
	Bindings []key.Binding
}

// groups orders the bindings for the help screen
func (k KeyMap) groups() []helpGroup {
	return []helpGroup{
		{"NAVIGATION", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.NextPane, k.Ends, k.HalfPage}},
		{"MY LIST", []key.Binding{k.ToggleFavorite, k.Remove}},
		{"CATALOG", []key.Binding{k.Search, k.PickGenre, k.Enter, k.Refresh}},
		{"VIEW", []key.Binding{k.Filter, k.Escape, k.ToggleInspector}},
		{"OTHER", []key.Binding{k.Quit, k.Help}},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
