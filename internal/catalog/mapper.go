package catalog

import (
	"github.com/mmcdole/reel/internal/domain"
)

// MapEntries converts list results to favorite entries. Results without a
// media_type take defaultKind; anything that is not a movie or TV show
// (people on /search/multi) is dropped.
func MapEntries(items []ResultItem, defaultKind domain.MediaKind) []domain.FavoriteEntry {
	entries := make([]domain.FavoriteEntry, 0, len(items))
	for _, r := range items {
		kind := defaultKind
		switch r.MediaType {
		case "":
		case "movie":
			kind = domain.KindMovie
		case "tv":
			kind = domain.KindSeries
		default:
			continue
		}
		entries = append(entries, MapEntry(r, kind))
	}
	return entries
}

// MapEntry converts a single result to the requested variant
func MapEntry(r ResultItem, kind domain.MediaKind) domain.FavoriteEntry {
	if kind == domain.KindSeries {
		return mapSeries(r)
	}
	return mapMovie(r)
}

func mapSnapshot(r ResultItem) domain.Snapshot {
	s := domain.Snapshot{
		ID:               r.ID,
		Title:            r.Title,
		BackdropPath:     r.BackdropPath,
		PosterPath:       r.PosterPath,
		Overview:         r.Overview,
		ReleaseDate:      r.ReleaseDate,
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		GenreIDs:         r.GenreIDs,
		Popularity:       r.Popularity,
		OriginalLanguage: r.OriginalLanguage,
	}
	if s.Title == "" {
		s.Title = r.Name
	}
	if s.ReleaseDate == "" {
		s.ReleaseDate = r.FirstAirDate
	}
	return s
}

func mapMovie(r ResultItem) domain.Movie {
	return domain.Movie{Snapshot: mapSnapshot(r), Adult: r.Adult}
}

func mapSeries(r ResultItem) domain.Series {
	return domain.Series{Snapshot: mapSnapshot(r)}
}

// MapPage converts a page response
func MapPage(p PageResponse, defaultKind domain.MediaKind) *domain.Page {
	return &domain.Page{
		Number:       p.Page,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
		Results:      MapEntries(p.Results, defaultKind),
	}
}

// MapGenres converts genre items
func MapGenres(items []GenreItem) []domain.Genre {
	genres := make([]domain.Genre, len(items))
	for i, g := range items {
		genres[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}
	return genres
}

// genreIDs flattens detail genres into the id list that list results carry
func genreIDs(items []GenreItem) []int {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int, len(items))
	for i, g := range items {
		ids[i] = g.ID
	}
	return ids
}

// MapMovieDetails converts a /movie/{id} response
func MapMovieDetails(d MovieDetailsResponse) *domain.MovieDetails {
	m := mapMovie(d.ResultItem)
	if len(m.GenreIDs) == 0 {
		m.GenreIDs = genreIDs(d.Genres)
	}
	return &domain.MovieDetails{
		Movie:   m,
		Genres:  MapGenres(d.Genres),
		Runtime: d.Runtime,
		Status:  d.Status,
		Tagline: d.Tagline,
		Budget:  d.Budget,
		Revenue: d.Revenue,
	}
}

// MapSeriesDetails converts a /tv/{id} response
func MapSeriesDetails(d TVDetailsResponse) *domain.SeriesDetails {
	s := mapSeries(d.ResultItem)
	if len(s.GenreIDs) == 0 {
		s.GenreIDs = genreIDs(d.Genres)
	}
	return &domain.SeriesDetails{
		Series:           s,
		Genres:           MapGenres(d.Genres),
		NumberOfSeasons:  d.NumberOfSeasons,
		NumberOfEpisodes: d.NumberOfEpisodes,
		Status:           d.Status,
	}
}
