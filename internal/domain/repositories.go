package domain

import (
	"context"
)

// CatalogRepository provides read access to the remote title catalog
type CatalogRepository interface {
	// Featured returns the top trending movie of the day
	Featured(ctx context.Context) (*Movie, error)

	// Popular, TopRated and Upcoming return one page of a movie list
	Popular(ctx context.Context, page int) (*Page, error)
	TopRated(ctx context.Context, page int) (*Page, error)
	Upcoming(ctx context.Context, page int) (*Page, error)

	// MovieDetails returns the full record for a movie
	MovieDetails(ctx context.Context, id int) (*MovieDetails, error)

	// SeriesDetails returns the full record for a TV show
	SeriesDetails(ctx context.Context, id int) (*SeriesDetails, error)

	// Search matches movies and series by title
	Search(ctx context.Context, query string, page int) (*Page, error)

	// Genres returns the movie genre list
	Genres(ctx context.Context) ([]Genre, error)

	// ByGenre returns movies of a genre ordered by popularity
	ByGenre(ctx context.Context, genreID, page int) (*Page, error)

	// Recommendations returns titles similar to the movie or series id
	Recommendations(ctx context.Context, kind MediaKind, id int) (*Page, error)
}

// HomeLoader fetches every home row in one call
type HomeLoader interface {
	LoadHome(ctx context.Context) (*Home, error)
}
