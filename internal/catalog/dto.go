package catalog

// ResultItem is a movie or TV entry as returned in TMDB list responses
type ResultItem struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"` // Movies
	Name             string  `json:"name,omitempty"`  // TV
	BackdropPath     string  `json:"backdrop_path"`
	PosterPath       string  `json:"poster_path"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date,omitempty"`   // Movies
	FirstAirDate     string  `json:"first_air_date,omitempty"` // TV
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
	MediaType        string  `json:"media_type,omitempty"` // Only on multi/trending endpoints
}

// PageResponse is the paginated envelope of list endpoints
type PageResponse struct {
	Page         int          `json:"page"`
	Results      []ResultItem `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// GenreItem is a genre
type GenreItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenresResponse is the response of /genre/movie/list
type GenresResponse struct {
	Genres []GenreItem `json:"genres"`
}

// MovieDetailsResponse is the response of /movie/{id}
type MovieDetailsResponse struct {
	ResultItem
	Genres  []GenreItem `json:"genres"`
	Runtime int         `json:"runtime"`
	Status  string      `json:"status"`
	Tagline string      `json:"tagline"`
	Budget  int64       `json:"budget"`
	Revenue int64       `json:"revenue"`
}

// TVDetailsResponse is the response of /tv/{id}
type TVDetailsResponse struct {
	ResultItem
	Genres           []GenreItem `json:"genres"`
	NumberOfSeasons  int         `json:"number_of_seasons"`
	NumberOfEpisodes int         `json:"number_of_episodes"`
	Status           string      `json:"status"`
}

// ErrorResponse is the body TMDB sends with non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
