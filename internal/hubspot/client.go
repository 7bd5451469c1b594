// Package hubspot implements the CRM-side collaborator of the dedupe
// engine: search, fetch, update and merge calls against the HubSpot CRM
// v3 objects API. Every call is paced through a shared rate limiter so
// that successive calls keep a minimum spacing; retry on throttling is
// the caller's responsibility, not the transport's.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/peted77/hubspot-fun/pkg/errors"
	"github.com/peted77/hubspot-fun/pkg/logging"
)

const (
	// DefaultBaseURL is the public HubSpot API origin.
	DefaultBaseURL = "https://api.hubapi.com"

	// DefaultCallSpacing is the minimum delay between successive API
	// calls. It applies to every call the client makes, search and
	// write alike.
	DefaultCallSpacing = 250 * time.Millisecond

	// DefaultHTTPTimeout bounds a single HTTP round trip.
	DefaultHTTPTimeout = 30 * time.Second
)

// Client is an authenticated, rate-paced HubSpot CRM API client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API origin, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithCallSpacing sets the minimum delay between successive API calls.
// Zero disables pacing.
func WithCallSpacing(spacing time.Duration) ClientOption {
	return func(c *Client) {
		if spacing <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(spacing), 1)
	}
}

// NewClient creates a client authenticated with a private-app access token.
func NewClient(accessToken string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.NewConfigError("hubspot", "missing access token", errors.ErrAccessTokenRequired)
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		token:   accessToken,
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		limiter: rate.NewLimiter(rate.Every(DefaultCallSpacing), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchRecord retrieves one record with the requested properties.
func (c *Client) FetchRecord(ctx context.Context, objectType, id string, properties []string) (*Record, error) {
	path := fmt.Sprintf("/crm/v3/objects/%s/%s", objectType, id)
	if len(properties) > 0 {
		query := url.Values{"properties": {strings.Join(properties, ",")}}
		path += "?" + query.Encode()
	}

	var record Record
	if err := c.do(ctx, http.MethodGet, objectType, path, nil, &record); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError(objectType, id)
		}
		return nil, err
	}
	return &record, nil
}

// Search runs one candidate query and returns the result page.
func (c *Client) Search(ctx context.Context, objectType string, req SearchRequest) ([]Record, error) {
	path := fmt.Sprintf("/crm/v3/objects/%s/search", objectType)

	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, objectType, path, req, &resp); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("object_type", objectType).
		Int("total", resp.Total).
		Int("returned", len(resp.Results)).
		Msg("search completed")
	return resp.Results, nil
}

// Update patches a record's properties.
func (c *Client) Update(ctx context.Context, objectType, id string, properties map[string]string) error {
	path := fmt.Sprintf("/crm/v3/objects/%s/%s", objectType, id)
	return c.do(ctx, http.MethodPatch, objectType, path, updateRequest{Properties: properties}, nil)
}

// Merge merges the secondary record into the primary. The primary
// survives; the secondary ceases to exist as a standalone record.
func (c *Client) Merge(ctx context.Context, objectType, primaryID, secondaryID string) error {
	path := fmt.Sprintf("/crm/v3/objects/%s/merge", objectType)
	body := mergeRequest{PrimaryObjectID: primaryID, ObjectIDToMerge: secondaryID}
	return c.do(ctx, http.MethodPost, objectType, path, body, nil)
}

// do performs one paced, authenticated API call and decodes the
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, objectType, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &errors.APIError{
			ObjectType: objectType,
			Endpoint:   path,
			Message:    "request failed",
			Err:        err,
		}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &errors.APIError{
			ObjectType: objectType,
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
