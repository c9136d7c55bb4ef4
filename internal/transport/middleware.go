// Package transport builds the HTTP client used to reach the Taskie backend.
//
// Cross-cutting behavior (logging, user agent, authorization) is layered as
// a chain of Middleware around a base http.RoundTripper.
package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/oauth2"
)

// HeaderAuthorization carries the raw token, without a scheme prefix.
const HeaderAuthorization = "Authorization"

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Middleware wraps a RoundTripper with additional behavior.
type Middleware func(next http.RoundTripper) http.RoundTripper

// Chain wraps base with mws. The first middleware is the outermost: it sees
// the request first and the response last. A nil base means
// http.DefaultTransport.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			base = mws[i](base)
		}
	}
	return base
}

// Authorization adds the Authorization header when src yields a non-blank
// token. Otherwise the request is sent unmodified.
func Authorization(src oauth2.TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			if src == nil {
				return next.RoundTrip(req)
			}
			tok, err := src.Token()
			if err != nil {
				closeBody(req)
				return nil, fmt.Errorf("resolve token: %w", err)
			}
			if tok == nil || strings.TrimSpace(tok.AccessToken) == "" {
				return next.RoundTrip(req)
			}

			// RoundTrippers must not modify the caller's request.
			authed := req.Clone(req.Context())
			authed.Header.Set(HeaderAuthorization, tok.AccessToken)
			return next.RoundTrip(authed)
		})
	}
}

// UserAgent sets the User-Agent header if ua is non-empty.
func UserAgent(ua string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if ua == "" {
			return next
		}
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			r := req.Clone(req.Context())
			r.Header.Set("User-Agent", ua)
			return next.RoundTrip(r)
		})
	}
}

// Logging logs every exchange. V(1) records method, URL, status and
// elapsed time; V(2) adds request and response bodies.
func Logging(log logr.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			if !log.V(1).Enabled() {
				return next.RoundTrip(req)
			}
			bodies := log.V(2).Enabled()

			log.V(1).Info("--> request", "method", req.Method, "url", req.URL.String())
			if bodies && req.GetBody != nil {
				if body, err := req.GetBody(); err == nil {
					data, _ := io.ReadAll(body)
					_ = body.Close()
					log.V(2).Info("--> body", "body", string(data))
				}
			}

			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)
			if err != nil {
				log.V(1).Info("<-- failed", "method", req.Method, "url", req.URL.String(), "error", err.Error(), "elapsed", elapsed)
				return nil, err
			}
			log.V(1).Info("<-- response", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "elapsed", elapsed)

			if bodies && resp.Body != nil {
				data, err := io.ReadAll(resp.Body)
				_ = resp.Body.Close()
				if err != nil {
					return nil, fmt.Errorf("read response body: %w", err)
				}
				resp.Body = io.NopCloser(bytes.NewReader(data))
				log.V(2).Info("<-- body", "body", string(data))
			}
			return resp, nil
		})
	}
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
