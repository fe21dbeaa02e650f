package domain

// Page is one page of catalog results
type Page struct {
	Number       int
	TotalPages   int
	TotalResults int
	Results      []FavoriteEntry
}

// Home holds the rows shown on the start screen
type Home struct {
	Featured *Movie
	Popular  []FavoriteEntry
	TopRated []FavoriteEntry
	Upcoming []FavoriteEntry
}

// MovieDetails is the full catalog record for a movie
type MovieDetails struct {
	Movie
	Genres  []Genre
	Runtime int // Minutes
	Status  string
	Tagline string
	Budget  int64
	Revenue int64
}

// SeriesDetails is the full catalog record for a TV show
type SeriesDetails struct {
	Series
	Genres           []Genre
	NumberOfSeasons  int
	NumberOfEpisodes int
	Status           string
}
