package hubspotfun

import (
	"net/http"
	"time"

	"github.com/peted77/hubspot-fun/internal/config"
	"github.com/peted77/hubspot-fun/internal/dedupe"
)

// Option is a function that configures a Deduper instance.
type Option func(*cfg) error

// cfg collects the construction-time settings for a Deduper.
type cfg struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	callSpacing time.Duration

	policy dedupe.Policy

	store dedupe.Store
}

// WithAccessToken sets the CRM private app access token.
func WithAccessToken(token string) Option {
	return func(c *cfg) error {
		c.accessToken = token
		return nil
	}
}

// WithBaseURL overrides the CRM API base URL. Mostly useful for
// pointing at a test server.
func WithBaseURL(url string) Option {
	return func(c *cfg) error {
		c.baseURL = url
		return nil
	}
}

// WithHTTPClient overrides the HTTP client used for CRM calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *cfg) error {
		c.httpClient = client
		return nil
	}
}

// WithCallSpacing sets the minimum delay between consecutive CRM
// calls.
func WithCallSpacing(spacing time.Duration) Option {
	return func(c *cfg) error {
		c.callSpacing = spacing
		return nil
	}
}

// WithSearchLimit caps the candidate page size per search.
func WithSearchLimit(limit int) Option {
	return func(c *cfg) error {
		c.policy.SearchLimit = limit
		return nil
	}
}

// WithWriteRetry configures the throttling retry budget: attempts
// bounds the total tries per write, base is the first backoff delay.
func WithWriteRetry(attempts int, base time.Duration) Option {
	return func(c *cfg) error {
		c.policy.WriteAttempts = attempts
		c.policy.RetryBase = base
		return nil
	}
}

// WithFuzzyNameThreshold sets the similarity a company name pair must
// exceed for the fuzzy matching tier.
func WithFuzzyNameThreshold(threshold float64) Option {
	return func(c *cfg) error {
		c.policy.FuzzyNameThreshold = threshold
		return nil
	}
}

// WithStore swaps the CRM-backed store for a custom implementation.
// When set, the access token and HTTP options are ignored.
func WithStore(store dedupe.Store) Option {
	return func(c *cfg) error {
		c.store = store
		return nil
	}
}

// WithSettings applies a loaded configuration bundle. Zero fields are
// ignored so explicit options can still layer on top.
func WithSettings(s *config.Settings) Option {
	return func(c *cfg) error {
		if s == nil {
			return nil
		}
		if s.AccessToken != "" {
			c.accessToken = s.AccessToken
		}
		if s.BaseURL != "" {
			c.baseURL = s.BaseURL
		}
		if s.CallSpacing > 0 {
			c.callSpacing = s.CallSpacing
		}
		if s.SearchLimit > 0 {
			c.policy.SearchLimit = s.SearchLimit
		}
		if s.WriteAttempts > 0 {
			c.policy.WriteAttempts = s.WriteAttempts
		}
		if s.RetryBase > 0 {
			c.policy.RetryBase = s.RetryBase
		}
		if s.FuzzyNameThreshold > 0 {
			c.policy.FuzzyNameThreshold = s.FuzzyNameThreshold
		}
		return nil
	}
}
