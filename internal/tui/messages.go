package tui

import (
	"github.com/mmcdole/reel/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// HomeLoadedMsg signals that the featured movie and home rows arrived
type HomeLoadedMsg struct {
	Home *domain.Home
}

// SearchResultsMsg signals that catalog search results are ready
type SearchResultsMsg struct {
	Query   string
	Results []domain.FavoriteEntry
}

// GenresLoadedMsg carries the catalog's genre list
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// GenreResultsMsg carries the most popular titles of a genre
type GenreResultsMsg struct {
	Genre   domain.Genre
	Results []domain.FavoriteEntry
}

// DetailsLoadedMsg carries *domain.MovieDetails or *domain.SeriesDetails
// and the recommendations for the same title
type DetailsLoadedMsg struct {
	Details interface{}
	Similar []domain.FavoriteEntry
}

// FavoritesEventMsg wraps an event from the favorites store
type FavoritesEventMsg struct {
	Event domain.FavoritesEvent
}

// ClearStatusMsg clears the footer status line
type ClearStatusMsg struct{}
