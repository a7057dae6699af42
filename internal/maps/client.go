// Package maps is a small client for the Google Maps web services the
// assistant needs: Find Place from Text and Directions.
//
// Responses are read with gjson rather than decoded into full structs; the
// Maps payloads are large and only a handful of paths matter here. Every
// failure (transport, HTTP status, non-OK API status, unparsable body) is
// wrapped with domain.ErrProvider. "Nothing found" statuses are not errors;
// they come back as empty slices.
package maps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pkordes/drivetime/internal/domain"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Config configures a Client.
type Config struct {
	APIKey string
	// BaseURL overrides the API root; tests point it at an httptest server.
	BaseURL string
	// Timeout bounds every call. Defaults to 5s.
	Timeout time.Duration
}

// Client calls the Google Maps web services.
type Client struct {
	key     string
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client with its own bounded http.Client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		key:     cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// get performs one GET and returns the parsed body along with its "status"
// field. The API key is never included in returned error text.
func (c *Client) get(ctx context.Context, path string, params url.Values) (gjson.Result, string, error) {
	params.Set("key", c.key)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, "", fmt.Errorf("%w: build request: %v", domain.ErrProvider, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gjson.Result{}, "", fmt.Errorf("%w: %s: %w", domain.ErrProvider, path, ctxErr)
		}
		return gjson.Result{}, "", fmt.Errorf("%w: %s: %v", domain.ErrProvider, path, redact(err, c.key))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, "", fmt.Errorf("%w: read body: %v", domain.ErrProvider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, "", fmt.Errorf("%w: %s returned status %d", domain.ErrProvider, path, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, "", fmt.Errorf("%w: %s returned malformed JSON", domain.ErrProvider, path)
	}

	doc := gjson.ParseBytes(body)
	status := doc.Get("status")
	if !status.Exists() {
		return gjson.Result{}, "", fmt.Errorf("%w: %s response has no status", domain.ErrProvider, path)
	}
	return doc, status.String(), nil
}

// APIError is a non-OK status answered by the provider. It unwraps to
// domain.ErrProvider.
type APIError struct {
	Path    string
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v: %s status %s: %s", domain.ErrProvider, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%v: %s status %s", domain.ErrProvider, e.Path, e.Status)
}

func (e *APIError) Unwrap() error { return domain.ErrProvider }

// apiError builds an APIError, including the provider's message if any.
func apiError(path, status string, doc gjson.Result) error {
	return &APIError{Path: path, Status: status, Message: doc.Get("error_message").String()}
}

// redact strips the API key out of url.Error messages, which embed the full
// request URL.
func redact(err error, key string) string {
	msg := err.Error()
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "REDACTED")
}
