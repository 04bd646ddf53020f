package askflow

import (
	"net/http"
	"time"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient *http.Client
}

// WithHTTPClient sets a custom HTTP client. The default is http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		if hc != nil {
			c.httpClient = hc
		}
	})
}

// WithTimeout sets a per-request timeout. Generate-backed queries can take
// tens of seconds on a cold model, size the timeout accordingly.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = &http.Client{Timeout: d}
	})
}
