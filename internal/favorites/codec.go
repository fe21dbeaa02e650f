package favorites

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mmcdole/reel/internal/domain"
)

// schemaVersion is accepted inside an envelope. The writer still emits a
// bare array so older readers keep working.
const schemaVersion = 1

// record is the persisted shape of one entry. It matches the catalog's movie
// record; series keep their name in "title" and first air date in
// "release_date", tagged with media_type "tv".
type record struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	BackdropPath     string  `json:"backdrop_path"`
	PosterPath       string  `json:"poster_path"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
	MediaType        string  `json:"media_type,omitempty"`
}

// envelope is the versioned layout
type envelope struct {
	Version int      `json:"version"`
	Items   []record `json:"items"`
}

// encode serializes the whole collection
func encode(entries []domain.FavoriteEntry) (string, error) {
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		records = append(records, toRecord(e))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decode parses a persisted value. Both the bare array and the versioned
// envelope are accepted. Later duplicates of an id are dropped.
func decode(raw string) ([]domain.FavoriteEntry, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	var records []record
	if data[0] == '{' {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		if env.Version > schemaVersion {
			return nil, fmt.Errorf("unsupported schema version %d", env.Version)
		}
		records = env.Items
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	entries := make([]domain.FavoriteEntry, 0, len(records))
	seen := make(map[int]bool, len(records))
	for _, r := range records {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		entries = append(entries, fromRecord(r))
	}
	return entries, nil
}

func toRecord(e domain.FavoriteEntry) record {
	s := e.Info()
	r := record{
		ID:               s.ID,
		Title:            s.Title,
		BackdropPath:     s.BackdropPath,
		PosterPath:       s.PosterPath,
		Overview:         s.Overview,
		ReleaseDate:      s.ReleaseDate,
		VoteAverage:      s.VoteAverage,
		VoteCount:        s.VoteCount,
		GenreIDs:         s.GenreIDs,
		OriginalLanguage: s.OriginalLanguage,
		Popularity:       s.Popularity,
		MediaType:        string(e.Kind()),
	}
	switch v := e.(type) {
	case domain.Movie:
		r.Adult = v.Adult
	case *domain.Movie:
		r.Adult = v.Adult
	}
	return r
}

func fromRecord(r record) domain.FavoriteEntry {
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

	if domain.ParseMediaKind(r.MediaType) == domain.KindSeries {
		return domain.Series{Snapshot: s}
	}
	return domain.Movie{Snapshot: s, Adult: r.Adult}
}
