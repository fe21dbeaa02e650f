package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MediaKind discriminates the variants of a favorite entry
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "tv"
)

// ParseMediaKind maps a catalog media_type to a MediaKind.
// Anything other than "tv" is a movie, including the empty string.
func ParseMediaKind(s string) MediaKind {
	if strings.EqualFold(s, string(KindSeries)) {
		return KindSeries
	}
	return KindMovie
}

// Snapshot holds the catalog fields shared by movies and series at the
// moment they were captured.
type Snapshot struct {
	ID               int     // Catalog identifier, unique within favorites
	Title            string  // Movie title or series name
	BackdropPath     string  // Relative backdrop artwork path
	PosterPath       string  // Relative poster artwork path
	Overview         string  // Plot synopsis
	ReleaseDate      string  // Release date (movie) or first air date (series), YYYY-MM-DD
	VoteAverage      float64 // 0-10 community rating
	VoteCount        int
	GenreIDs         []int
	Popularity       float64
	OriginalLanguage string
}

// Year returns the year portion of ReleaseDate (0 if unknown)
func (s Snapshot) Year() int {
	if len(s.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// FavoriteEntry is the variant stored in the favorites collection:
// either a Movie or a Series. The set of implementations is closed.
type FavoriteEntry interface {
	// GetID returns the catalog identifier
	GetID() int

	// GetTitle returns the display title
	GetTitle() string

	// Kind returns the discriminant
	Kind() MediaKind

	// Info returns the shared catalog fields
	Info() Snapshot

	favoriteEntry()
}

// Movie is a feature film
type Movie struct {
	Snapshot
	Adult bool
}

func (m Movie) GetID() int { return m.ID }
func (m Movie) GetTitle() string { return m.Title }
func (m Movie) Kind() MediaKind { return KindMovie }
func (m Movie) Info() Snapshot { return m.Snapshot }
func (m Movie) favoriteEntry() {}
func (m Movie) String() string { return describe(m.Snapshot, "Movie") }

// Series is a TV show
type Series struct {
	Snapshot
}

func (s Series) GetID() int { return s.ID }
func (s Series) GetTitle() string { return s.Title }
func (s Series) Kind() MediaKind { return KindSeries }
func (s Series) Info() Snapshot { return s.Snapshot }
func (s Series) favoriteEntry() {}
func (s Series) String() string { return describe(s.Snapshot, "Series") }

func describe(s Snapshot, kind string) string {
	if year := s.Year(); year > 0 {
		return fmt.Sprintf("%s %q (%d) #%d", kind, s.Title, year, s.ID)
	}
	return fmt.Sprintf("%s %q #%d", kind, s.Title, s.ID)
}

// CloneEntry returns a deep copy so the stored snapshot cannot be changed
// through the caller's value.
func CloneEntry(e FavoriteEntry) FavoriteEntry {
	switch v := e.(type) {
	case Movie:
		v.GenreIDs = cloneInts(v.GenreIDs)
		return v
	case *Movie:
		c := *v
		c.GenreIDs = cloneInts(c.GenreIDs)
		return c
	case Series:
		v.GenreIDs = cloneInts(v.GenreIDs)
		return v
	case *Series:
		c := *v
		c.GenreIDs = cloneInts(c.GenreIDs)
		return c
	default:
		return e
	}
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	out := make([]int, len(in))
	copy(out, in)
	return out
}

// Genre is a catalog genre
type Genre struct {
	ID   int
	Name string
}
