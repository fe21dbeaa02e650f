package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultLanguage     = "es-ES"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	userAgent           = "Reel/1.0"

	defaultMaxRetries  = 3
	defaultBaseBackoff = 500 * time.Millisecond
)

// Client implements domain.CatalogRepository and domain.HomeLoader for TMDB
type Client struct {
	baseURL      string
	apiKey       string
	language     string
	imageBaseURL string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *slog.Logger

	maxRetries  int
	baseBackoff time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLanguage sets the language query parameter sent with every request
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithImageBaseURL sets the artwork CDN prefix used by ImageURL
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.imageBaseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithRateLimit caps outgoing requests per second (<= 0 disables the cap)
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithRetry sets how many times a 429 response is retried and the base of
// the exponential backoff used when the response has no Retry-After header
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max(maxRetries, 0)
		if baseBackoff > 0 {
			c.baseBackoff = baseBackoff
		}
	}
}

// NewClient creates a new TMDB API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		language:     defaultLanguage,
		imageBaseURL: defaultImageBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:     rate.NewLimiter(rate.Inf, 0),
		logger:      logger,
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBaseBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ImageURL builds the artwork URL for a relative path ("" if path is empty)
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return fmt.Sprintf("%s/%s%s", c.imageBaseURL, size, path)
}

// doRequest performs an authenticated GET request, retrying on 429
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	for attempt := 0; ; attempt++ {
		status, header, body, err := c.get(ctx, path, reqURL)
		if err != nil {
			return nil, err
		}
		if status != http.StatusTooManyRequests {
			return c.checkResponse(status, body)
		}
		if attempt >= c.maxRetries {
			c.logger.Warn("tmdb rate limit exceeded", "path", path, "retries", attempt)
			return nil, fmt.Errorf("rate limit exceeded after %d retries", attempt)
		}

		wait := retryAfter(header, attempt, c.baseBackoff)
		c.logger.Debug("tmdb rate limited", "path", path, "wait", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// get sends one request and reads the whole body
func (c *Client) get(ctx context.Context, path, reqURL string) (int, http.Header, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, nil, ctxErr
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return 0, nil, nil, fmt.Errorf("%w: %v", domain.ErrCatalogOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, resp.Header, body, nil
}

// checkResponse maps a non-429 status to the body or an error
func (c *Client) checkResponse(status int, body []byte) ([]byte, error) {
	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	}

	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
		c.logger.Error("tmdb request error", "status", status, "message", apiErr.StatusMessage)
		return nil, fmt.Errorf("unexpected status code %d: %s", status, apiErr.StatusMessage)
	}
	c.logger.Error("tmdb request error", "status", status, "bodyLen", len(body))
	return nil, fmt.Errorf("unexpected status code: %d", status)
}

// retryAfter honors a Retry-After header in seconds, else backs off 2^n * base
func retryAfter(h http.Header, attempt int, base time.Duration) time.Duration {
	if secs, err := strconv.Atoi(h.Get("Retry-After")); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Duration(1<<attempt) * base
}

// getJSON performs a request and decodes the body into dest
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

func (c *Client) getPage(ctx context.Context, path string, query url.Values, kind domain.MediaKind) (*domain.Page, error) {
	var resp PageResponse
	if err := c.getJSON(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return MapPage(resp, kind), nil
}

// Featured returns the first trending movie of the day
func (c *Client) Featured(ctx context.Context) (*domain.Movie, error) {
	var resp PageResponse
	if err := c.getJSON(ctx, "/trending/movie/day", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, domain.ErrItemNotFound
	}
	m := mapMovie(resp.Results[0])
	return &m, nil
}

// Popular returns a page of /movie/popular
func (c *Client) Popular(ctx context.Context, page int) (*domain.Page, error) {
	return c.getPage(ctx, "/movie/popular", pageQuery(page), domain.KindMovie)
}

// TopRated returns a page of /movie/top_rated
func (c *Client) TopRated(ctx context.Context, page int) (*domain.Page, error) {
	return c.getPage(ctx, "/movie/top_rated", pageQuery(page), domain.KindMovie)
}

// Upcoming returns a page of /movie/upcoming
func (c *Client) Upcoming(ctx context.Context, page int) (*domain.Page, error) {
	return c.getPage(ctx, "/movie/upcoming", pageQuery(page), domain.KindMovie)
}

// MovieDetails returns /movie/{id}
func (c *Client) MovieDetails(ctx context.Context, id int) (*domain.MovieDetails, error) {
	var resp MovieDetailsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return MapMovieDetails(resp), nil
}

// SeriesDetails returns /tv/{id}
func (c *Client) SeriesDetails(ctx context.Context, id int) (*domain.SeriesDetails, error) {
	var resp TVDetailsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/tv/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return MapSeriesDetails(resp), nil
}

// Search returns movies and TV shows matching query (/search/multi)
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &domain.Page{Number: 1}, nil
	}
	q := pageQuery(page)
	q.Set("query", query)
	return c.getPage(ctx, "/search/multi", q, domain.KindMovie)
}

// Genres returns /genre/movie/list
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	var resp GenresResponse
	if err := c.getJSON(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	return MapGenres(resp.Genres), nil
}

// ByGenre returns /discover/movie filtered by genre, most popular first
func (c *Client) ByGenre(ctx context.Context, genreID, page int) (*domain.Page, error) {
	q := pageQuery(page)
	q.Set("with_genres", strconv.Itoa(genreID))
	q.Set("sort_by", "popularity.desc")
	return c.getPage(ctx, "/discover/movie", q, domain.KindMovie)
}

// Recommendations returns /movie/{id}/recommendations or /tv/{id}/recommendations
func (c *Client) Recommendations(ctx context.Context, kind domain.MediaKind, id int) (*domain.Page, error) {
	path := fmt.Sprintf("/movie/%d/recommendations", id)
	if kind == domain.KindSeries {
		path = fmt.Sprintf("/tv/%d/recommendations", id)
	}
	return c.getPage(ctx, path, pageQuery(1), kind)
}

// IsAuthError reports whether err means the API key was rejected
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrAuthFailed)
}
