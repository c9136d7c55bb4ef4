package transport

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout bounds connect plus read for a single request.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client to the backend.
	DefaultUserAgent = "taskie/0.1"
)

// Options configures Build.
type Options struct {
	// Timeout is the per-request timeout. Zero means DefaultTimeout.
	Timeout time.Duration

	// Session supplies the token for the Authorization header. May be nil.
	Session oauth2.TokenSource

	// Logger receives request/response logs. The zero Logger discards.
	Logger logr.Logger

	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// Base is the underlying transport. Nil means http.DefaultTransport.
	Base http.RoundTripper
}

// Build assembles an http.Client: logging, then user agent, then
// authorization, then the base transport. It neither retries nor caches.
func Build(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &http.Client{
		Timeout: timeout,
		Transport: Chain(opts.Base,
			Logging(opts.Logger),
			UserAgent(ua),
			Authorization(opts.Session),
		),
	}
}
