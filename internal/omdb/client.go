// Package omdb is a small client for the OMDb catalog API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL = "http://www.omdbapi.com/"

	// DefaultAPIKey is the shared demo key the application ships with.
	DefaultAPIKey = "827057cf"

	defaultTimeout = 10 * time.Second

	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 1 << 20
)

// ErrMalformed is returned when a response body cannot be decoded.
var ErrMalformed = errors.New("malformed response")

// StatusError is returned for any non-2xx HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client performs lookups against OMDb.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.APIKey == "" {
		opts.APIKey = DefaultAPIKey
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		log:        logger.With("adapter", "omdb"),
	}
}

// SearchURL returns the request URL for a title search.
func (c *Client) SearchURL(phrase string) string {
	return c.baseURL + "?apikey=" + EncodeComponent(c.apiKey) + "&s=" + EncodeComponent(phrase)
}

// TitleURL returns the request URL for a single-title lookup.
func (c *Client) TitleURL(imdbID string) string {
	return c.baseURL + "?apikey=" + EncodeComponent(c.apiKey) + "&i=" + EncodeComponent(imdbID) + "&plot=short"
}

// Search looks up titles matching phrase. A provider "not found" answer is
// not an error: it comes back as a SearchResponse with Response "False".
func (c *Client) Search(ctx context.Context, phrase string) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.get(ctx, c.SearchURL(phrase), &out); err != nil {
		return nil, fmt.Errorf("omdb: search %q: %w", phrase, err)
	}
	if !validFlag(out.Response) {
		return nil, fmt.Errorf("omdb: search %q: %w: Response is %q", phrase, ErrMalformed, out.Response)
	}

	c.log.DebugContext(ctx, "omdb search response",
		slog.String("phrase", phrase),
		slog.String("response", out.Response),
		slog.Int("records", len(out.Search)),
	)
	return &out, nil
}

// Title fetches details for one title by IMDb id.
func (c *Client) Title(ctx context.Context, imdbID string) (*TitleResponse, error) {
	var out TitleResponse
	if err := c.get(ctx, c.TitleURL(imdbID), &out); err != nil {
		return nil, fmt.Errorf("omdb: title %q: %w", imdbID, err)
	}
	if !validFlag(out.Response) {
		return nil, fmt.Errorf("omdb: title %q: %w: Response is %q", imdbID, ErrMalformed, out.Response)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func validFlag(v string) bool {
	return v == ResponseTrue || v == ResponseFalse
}

// EncodeComponent percent-encodes s for use as a single query parameter
// value. Unlike url.QueryEscape it encodes a space as %20.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
