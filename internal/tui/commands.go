package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
	"golang.org/x/sync/errgroup"
)

// Command factories for async operations

// LoadHomeCmd fetches the featured movie and home rows
func LoadHomeCmd(loader domain.HomeLoader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		home, err := loader.LoadHome(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading home"}
		}
		return HomeLoadedMsg{Home: home}
	}
}

// SearchCmd queries the catalog and ranks results by title closeness
func SearchCmd(repo domain.CatalogRepository, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		page, err := repo.Search(ctx, query, 1)
		if err != nil {
			return ErrMsg{Err: err, Context: fmt.Sprintf("searching %q", query)}
		}
		return SearchResultsMsg{Query: query, Results: search.Rank(query, page.Results)}
	}
}

// LoadGenresCmd fetches the genre list
func LoadGenresCmd(repo domain.CatalogRepository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		genres, err := repo.Genres(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading genres"}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// LoadGenreCmd fetches the first page of a genre
func LoadGenreCmd(repo domain.CatalogRepository, genre domain.Genre) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		page, err := repo.ByGenre(ctx, genre.ID, 1)
		if err != nil {
			return ErrMsg{Err: err, Context: fmt.Sprintf("loading %s", genre.Name)}
		}
		return GenreResultsMsg{Genre: genre, Results: page.Results}
	}
}

// LoadDetailsCmd fetches the full record for a movie or series together
// with its recommendations. A failed recommendations request only leaves
// them out.
func LoadDetailsCmd(repo domain.CatalogRepository, entry domain.FavoriteEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var (
			g       errgroup.Group
			details interface{}
			similar []domain.FavoriteEntry
		)
		g.Go(func() error {
			var err error
			switch entry.Kind() {
			case domain.KindSeries:
				details, err = repo.SeriesDetails(ctx, entry.GetID())
			default:
				details, err = repo.MovieDetails(ctx, entry.GetID())
			}
			return err
		})
		g.Go(func() error {
			page, err := repo.Recommendations(ctx, entry.Kind(), entry.GetID())
			if err != nil {
				return nil
			}
			for _, e := range page.Results {
				if e.GetID() != entry.GetID() {
					similar = append(similar, e)
				}
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return ErrMsg{Err: err, Context: "loading details"}
		}
		return DetailsLoadedMsg{Details: details, Similar: similar}
	}
}

// WaitForFavoritesCmd blocks until the favorites store reports an event.
// Returns nil once the channel is closed.
func WaitForFavoritesCmd(events <-chan domain.FavoritesEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return FavoritesEventMsg{Event: event}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
