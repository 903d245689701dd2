package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

var (
	// ErrNotFound means the upstream does not recognize the movie id.
	ErrNotFound = errors.New("catalog: movie not found")
	// ErrUpstream covers transport failures and unexpected status codes.
	ErrUpstream = errors.New("catalog: upstream error")
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"

	castLimit = 10
)

// Client wraps the movie metadata HTTP API. Pure request/response, no
// retries: listing calls degrade to an empty list when the response body is
// malformed, and only transport-level failures surface as errors.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpc        *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:      baseURL,
		imageBaseURL: defaultImageBaseURL,
		apiKey:       apiKey,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type listingResponse struct {
	Results []MovieSummary `json:"results"`
}

type creditsResponse struct {
	Cast []CastMember `json:"cast"`
}

type videosResponse struct {
	Results []Video `json:"results"`
}

// ListByFilter fetches the fixed listing behind a named filter chip.
func (c *Client) ListByFilter(ctx context.Context, filter Filter) ([]MovieSummary, error) {
	route := filterRoutes[NormalizeFilter(filter)]
	endpoint := fmt.Sprintf("%s/%s?api_key=%s%s", c.baseURL, route.path, url.QueryEscape(c.apiKey), route.params)
	return c.listing(ctx, endpoint)
}

// Search fetches the free-text search listing.
func (c *Client) Search(ctx context.Context, text string) ([]MovieSummary, error) {
	endpoint := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(text))
	return c.listing(ctx, endpoint)
}

func (c *Client) listing(ctx context.Context, endpoint string) ([]MovieSummary, error) {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return []MovieSummary{}, err
	}
	var parsed listingResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Results == nil {
		// Malformed body or missing results field degrades to empty.
		return []MovieSummary{}, nil
	}
	return parsed.Results, nil
}

// GetDetail fetches the movie record and its credits. The two calls run
// concurrently and both must succeed. Cast keeps the first ten entries in
// response order.
func (c *Client) GetDetail(ctx context.Context, movieID int) (MovieDetail, error) {
	detailURL := fmt.Sprintf("%s/movie/%d?api_key=%s", c.baseURL, movieID, url.QueryEscape(c.apiKey))
	creditsURL := fmt.Sprintf("%s/movie/%d/credits?api_key=%s", c.baseURL, movieID, url.QueryEscape(c.apiKey))

	var (
		creditsBody []byte
		creditsErr  error
		done        = make(chan struct{})
	)
	go func() {
		defer close(done)
		creditsBody, creditsErr = c.get(ctx, creditsURL)
	}()

	detailBody, detailErr := c.get(ctx, detailURL)
	<-done

	if detailErr != nil {
		return MovieDetail{}, detailErr
	}
	if creditsErr != nil {
		return MovieDetail{}, creditsErr
	}

	var detail MovieDetail
	if err := json.Unmarshal(detailBody, &detail); err != nil {
		return MovieDetail{}, fmt.Errorf("%w: decode detail: %v", ErrUpstream, err)
	}
	var credits creditsResponse
	if err := json.Unmarshal(creditsBody, &credits); err != nil {
		return MovieDetail{}, fmt.Errorf("%w: decode credits: %v", ErrUpstream, err)
	}
	cast := credits.Cast
	if len(cast) > castLimit {
		cast = cast[:castLimit]
	}
	detail.Cast = cast
	return detail, nil
}

// GetTrailerKey returns the key of the first video whose site is YouTube and
// whose type is Trailer, by list order. First match wins; the listing order
// is the upstream's and must not be re-ranked.
func (c *Client) GetTrailerKey(ctx context.Context, movieID int) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/movie/%d/videos?api_key=%s", c.baseURL, movieID, url.QueryEscape(c.apiKey))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", false, err
	}
	var parsed videosResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, nil
	}
	for _, v := range parsed.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return v.Key, true, nil
		}
	}
	return "", false, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	return body, nil
}

// PosterURL builds the w300 poster image URL, or "" without a path.
func (c *Client) PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/w300" + path
}

// BackdropURL builds the w780 backdrop image URL, or "" without a path.
func (c *Client) BackdropURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/w780" + path
}

// ProfileURL builds the w185 cast profile image URL, or "" without a path.
func (c *Client) ProfileURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/w185" + path
}
