package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/setlist/internal/catalog"
)

// API is the show service surface the fallback layer consumes. It is
// implemented by *Client and by test fakes.
type API interface {
	ListShows(ctx context.Context) ([]catalog.Show, error)
	GetShow(ctx context.Context, id int64) (catalog.Show, error)
	ListBands(ctx context.Context) ([]catalog.Band, error)
	GetBand(ctx context.Context, id int64) (catalog.Band, error)
	CreateBand(ctx context.Context, in catalog.BandInput) (catalog.Band, error)
	ListVenues(ctx context.Context) ([]catalog.Venue, error)
	GetVenue(ctx context.Context, id int64) (catalog.Venue, error)
	ListReviews(ctx context.Context, showID int64) ([]catalog.Review, error)
	CreateReview(ctx context.Context, in catalog.ReviewInput) (catalog.Review, error)
	UpdateReview(ctx context.Context, id int64, in catalog.ReviewInput) (catalog.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the show service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "https://music-band-1.onrender.com"
	defaultUserAgent = "setlist/0.1"
	requestTimeout   = 10 * time.Second
	requestIDHeader  = "X-Request-Id"
)

// StatusError reports a non-success HTTP status from the service.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
}

// NewClient builds a Client for the service rooted at baseURL. A zero timeout
// uses the package default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListShows retrieves every show with nested venue, bands and reviews.
func (c *Client) ListShows(ctx context.Context) ([]catalog.Show, error) {
	var payload []catalog.Show
	if err := c.do(ctx, http.MethodGet, "/api/shows/", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetShow retrieves one show.
func (c *Client) GetShow(ctx context.Context, id int64) (catalog.Show, error) {
	var payload catalog.Show
	if err := c.do(ctx, http.MethodGet, itemPath("/api/shows/", id), nil, &payload); err != nil {
		return catalog.Show{}, err
	}
	return payload, nil
}

// ListBands retrieves every band with nested musicians.
func (c *Client) ListBands(ctx context.Context) ([]catalog.Band, error) {
	var payload []catalog.Band
	if err := c.do(ctx, http.MethodGet, "/api/bands/", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetBand retrieves one band.
func (c *Client) GetBand(ctx context.Context, id int64) (catalog.Band, error) {
	var payload catalog.Band
	if err := c.do(ctx, http.MethodGet, itemPath("/api/bands/", id), nil, &payload); err != nil {
		return catalog.Band{}, err
	}
	return payload, nil
}

// CreateBand posts a new band and returns the service's record.
func (c *Client) CreateBand(ctx context.Context, in catalog.BandInput) (catalog.Band, error) {
	var payload catalog.Band
	if err := c.do(ctx, http.MethodPost, "/api/bands/", in, &payload); err != nil {
		return catalog.Band{}, err
	}
	if payload.ID == 0 {
		return catalog.Band{}, fmt.Errorf("decode response: band without id")
	}
	return payload, nil
}

// ListVenues retrieves every venue.
func (c *Client) ListVenues(ctx context.Context) ([]catalog.Venue, error) {
	var payload []catalog.Venue
	if err := c.do(ctx, http.MethodGet, "/api/venues/", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetVenue retrieves one venue.
func (c *Client) GetVenue(ctx context.Context, id int64) (catalog.Venue, error) {
	var payload catalog.Venue
	if err := c.do(ctx, http.MethodGet, itemPath("/api/venues/", id), nil, &payload); err != nil {
		return catalog.Venue{}, err
	}
	return payload, nil
}

// ListReviews retrieves the reviews of one show. The service only exposes
// the full review list, so the show filter is applied here.
func (c *Client) ListReviews(ctx context.Context, showID int64) ([]catalog.Review, error) {
	var payload []catalog.Review
	if err := c.do(ctx, http.MethodGet, "/api/reviews/", nil, &payload); err != nil {
		return nil, err
	}
	out := payload[:0]
	for _, r := range payload {
		if r.ShowID == showID {
			out = append(out, r)
		}
	}
	return out, nil
}

// CreateReview posts a new review.
func (c *Client) CreateReview(ctx context.Context, in catalog.ReviewInput) (catalog.Review, error) {
	var payload catalog.Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews/", in, &payload); err != nil {
		return catalog.Review{}, err
	}
	if payload.ID == 0 {
		return catalog.Review{}, fmt.Errorf("decode response: review without id")
	}
	return payload, nil
}

// UpdateReview patches an existing review.
func (c *Client) UpdateReview(ctx context.Context, id int64, in catalog.ReviewInput) (catalog.Review, error) {
	var payload catalog.Review
	if err := c.do(ctx, http.MethodPatch, itemPath("/api/reviews/", id), in, &payload); err != nil {
		return catalog.Review{}, err
	}
	return payload, nil
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("/api/reviews/", id), nil, nil)
}

// Ping checks that the service answers with a success status. The body is
// not read.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/shows/", nil, nil)
}

func itemPath(collection string, id int64) string {
	return strings.TrimSuffix(collection, "/") + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
