package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/catalog"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/favorites"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StatePickingGenre
	StateHelp
)

// Pane identifies which panel receives navigation keys
type Pane int

const (
	PaneSidebar Pane = iota
	PaneList
)

// Option configures a Model
type Option func(*Model)

// WithEvents subscribes the model to favorites events
func WithEvents(events <-chan domain.FavoritesEvent) Option {
	return func(m *Model) {
		m.events = events
	}
}

// WithPosterSize sets the image size used for poster links
func WithPosterSize(size string) Option {
	return func(m *Model) {
		if size != "" {
			m.posterSize = size
		}
	}
}

// WithLogger sets the logger (slog.Default when nil)
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Catalog   catalog.Catalog
	Favorites *favorites.Store

	// UI Components
	Sidebar     components.Sidebar
	List        *components.EntryList
	Inspector   components.Inspector
	SearchModal components.InputModal
	GenrePicker components.GenrePicker
	Spinner     spinner.Model

	// Data
	Home        *domain.Home
	rows        map[components.Section][]domain.FavoriteEntry
	current     components.Section
	searchQuery string

	// Genre browsing
	genres          []domain.Genre
	genre           domain.Genre
	genresRequested bool
	genreLoading    bool

	// Dimensions
	Width  int
	Height int

	// UI state
	Focus         Pane
	StatusMsg     string
	StatusIsErr   bool
	Loading       bool
	ShowInspector bool

	events     <-chan domain.FavoritesEvent
	posterSize string
	logger     *slog.Logger
}

// NewModel creates the application model. The favorites store is taken from
// ctx; without one it fails with domain.ErrFavoritesNotInitialized.
func NewModel(ctx context.Context, cat catalog.Catalog, opts ...Option) (Model, error) {
	store, err := favorites.FromContext(ctx)
	if err != nil {
		return Model{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.SpinnerStyle

	m := Model{
		State:         StateBrowsing,
		Catalog:       cat,
		Favorites:     store,
		Sidebar:       components.NewSidebar(),
		List:          components.NewEntryList(components.SectionPopular.String()),
		Inspector:     components.NewInspector(),
		SearchModal:   components.NewInputModal(),
		GenrePicker:   components.NewGenrePicker(),
		Spinner:       sp,
		rows:          make(map[components.Section][]domain.FavoriteEntry),
		current:       components.SectionPopular,
		Loading:       true,
		ShowInspector: true,
		Focus:         PaneList,
		posterSize:    "w500",
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.List.SetFavoriteCheck(store.IsFavorite)
	m.List.SetFocused(true)
	for _, sec := range []components.Section{components.SectionPopular, components.SectionTopRated, components.SectionUpcoming} {
		m.Sidebar.SetLoading(sec, true)
	}
	m.Sidebar.SetCount(components.SectionMyList, store.Len())
	m.showSection(components.SectionPopular)

	return m, nil
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadHomeCmd(m.Catalog),
		m.Spinner.Tick,
		WaitForFavoritesCmd(m.events),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.List.SetLoadingView(m.Spinner.View())
		return m, cmd

	case HomeLoadedMsg:
		m.Loading = false
		m.Home = msg.Home
		m.setRow(components.SectionPopular, msg.Home.Popular)
		m.setRow(components.SectionTopRated, msg.Home.TopRated)
		m.setRow(components.SectionUpcoming, msg.Home.Upcoming)
		m.logger.Debug("home loaded", "popular", len(msg.Home.Popular))
		if isHomeRow(m.current) {
			m.showSection(m.current)
		}
		return m, nil

	case SearchResultsMsg:
		m.Loading = false
		m.searchQuery = msg.Query
		m.Sidebar.SetLoading(components.SectionSearch, false)
		m.setRow(components.SectionSearch, msg.Results)
		m.Sidebar.Select(components.SectionSearch)
		m.showSection(components.SectionSearch)
		m.setFocus(PaneList)
		return m, nil

	case GenresLoadedMsg:
		m.genres = msg.Genres
		if len(m.genres) == 0 {
			m.genreLoading = false
			m.Sidebar.SetLoading(components.SectionGenres, false)
			if m.current == components.SectionGenres {
				m.showSection(components.SectionGenres)
			}
			return m, nil
		}
		if m.genre.ID == 0 {
			cmd := m.selectGenre(m.genres[0])
			return m, cmd
		}
		return m, nil

	case GenreResultsMsg:
		if msg.Genre.ID != m.genre.ID {
			return m, nil
		}
		m.genreLoading = false
		m.setRow(components.SectionGenres, msg.Results)
		if m.current == components.SectionGenres {
			m.showSection(components.SectionGenres)
		}
		return m, nil

	case DetailsLoadedMsg:
		m.Inspector.SetDetails(msg.Details, msg.Similar)
		return m, nil

	case FavoritesEventMsg:
		m.handleFavoritesEvent(msg.Event)
		return m, WaitForFavoritesCmd(m.events)

	case ErrMsg:
		m.Loading = false
		for _, sec := range components.AllSections {
			m.Sidebar.SetLoading(sec, false)
		}
		m.genreLoading = false
		if m.genres == nil {
			m.genresRequested = false
		}
		if (isHomeRow(m.current) || m.current == components.SectionGenres) && m.List.IsLoading() {
			m.List.SetLoading(false)
		}
		m.StatusMsg = msg.Error()
		if errors.Is(msg.Err, domain.ErrAuthFailed) {
			m.StatusMsg = "catalog rejected the API key, check catalog.api_key"
		}
		m.StatusIsErr = true
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, ClearStatusCmd(5 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m *Model) handleFavoritesEvent(e domain.FavoritesEvent) {
	switch e.Type {
	case domain.EventDegraded:
		m.StatusMsg = "My List could not be saved, changes last until exit"
		m.StatusIsErr = true
	case domain.EventCorrupt:
		m.StatusMsg = "saved My List was unreadable and has been reset"
		m.StatusIsErr = true
	}
	m.refreshFavorites()
}

// refreshFavorites re-reads My List after a change
func (m *Model) refreshFavorites() {
	m.Sidebar.SetCount(components.SectionMyList, m.Favorites.Len())
	if m.current == components.SectionMyList {
		m.loadMyList(false)
	}
	m.syncInspector()
}

func (m *Model) setRow(sec components.Section, entries []domain.FavoriteEntry) {
	m.rows[sec] = entries
	m.Sidebar.SetLoading(sec, false)
	m.Sidebar.SetCount(sec, len(entries))
}

// showSection points the list at sec
func (m *Model) showSection(sec components.Section) {
	m.current = sec
	m.List.SetTitle(sec.String())

	switch sec {
	case components.SectionMyList:
		m.loadMyList(true)
	case components.SectionSearch:
		if m.searchQuery != "" {
			m.List.SetTitle(sec.String() + ": " + m.searchQuery)
			m.List.SetEmptyText("No results")
		} else {
			m.List.SetEmptyText("Press s to search the catalog")
		}
		m.List.SetEntries(m.rows[sec])
	case components.SectionGenres:
		switch {
		case m.genre.Name != "":
			m.List.SetTitle(sec.String() + ": " + m.genre.Name)
			m.List.SetEmptyText("No titles in this genre")
		case m.genres != nil && len(m.genres) == 0:
			m.List.SetEmptyText("No genres available")
		default:
			m.List.SetEmptyText("Press c to pick a genre")
		}
		m.List.SetEntries(m.rows[sec])
		if m.genreLoading {
			m.List.SetLoading(true)
		}
	default:
		m.List.SetEmptyText("No titles")
		m.List.SetEntries(m.rows[sec])
		if m.Home == nil && m.Loading {
			m.List.SetLoading(true)
		}
	}

	m.syncInspector()
}

// sectionCmd returns the fetch a section needs when it is first opened
func (m *Model) sectionCmd(sec components.Section) tea.Cmd {
	if sec != components.SectionGenres || m.genresRequested {
		return nil
	}
	m.genresRequested = true
	m.genreLoading = true
	m.Sidebar.SetLoading(components.SectionGenres, true)
	if m.current == components.SectionGenres {
		m.List.SetLoading(true)
	}
	return LoadGenresCmd(m.Catalog)
}

// selectGenre makes g the browsed genre and fetches its titles
func (m *Model) selectGenre(g domain.Genre) tea.Cmd {
	m.genre = g
	m.genreLoading = true
	m.Sidebar.SetLoading(components.SectionGenres, true)
	if m.current == components.SectionGenres {
		m.showSection(components.SectionGenres)
	}
	return LoadGenreCmd(m.Catalog, g)
}

// loadMyList fills the list from the favorites store. Until hydration ends
// the list shows a loading state instead of an empty one.
func (m *Model) loadMyList(reset bool) {
	if m.Favorites.IsLoading() {
		m.List.SetLoading(true)
		return
	}
	m.List.SetEmptyText("Your list is empty, press f on any title to add it")
	if reset {
		m.List.SetEntries(m.Favorites.Favorites())
	} else {
		m.List.ReplaceEntries(m.Favorites.Favorites())
	}
}

// syncInspector shows the list selection in the inspector
func (m *Model) syncInspector() {
	entry := m.List.SelectedEntry()
	m.Inspector.SetEntry(entry)
	if entry == nil {
		m.Inspector.SetFavorite(false)
		m.Inspector.SetPosterURL("")
		return
	}
	m.Inspector.SetFavorite(m.Favorites.IsFavorite(entry.GetID()))
	m.Inspector.SetPosterURL(m.Catalog.ImageURL(entry.Info().PosterPath, m.posterSize))
}

func (m *Model) setFocus(p Pane) {
	m.Focus = p
	m.Sidebar.SetFocused(p == PaneSidebar)
	m.List.SetFocused(p == PaneList)
}

// CurrentSection returns the section shown in the list
func (m Model) CurrentSection() components.Section {
	return m.current
}

func isHomeRow(sec components.Section) bool {
	switch sec {
	case components.SectionPopular, components.SectionTopRated, components.SectionUpcoming:
		return true
	default:
		return false
	}
}
