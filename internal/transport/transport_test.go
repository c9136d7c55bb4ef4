package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"golang.org/x/oauth2"

	"taskie/internal/session"
)

// headerRecorder is a test server that records the Authorization header of
// every request it receives.
type headerRecorder struct {
	mu      sync.Mutex
	auth    []string
	hasAuth []bool
	agents  []string
}

func (h *headerRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	_, ok := r.Header[HeaderAuthorization]
	h.auth = append(h.auth, r.Header.Get(HeaderAuthorization))
	h.hasAuth = append(h.hasAuth, ok)
	h.agents = append(h.agents, r.Header.Get("User-Agent"))
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"message":"ok"}`)
}

func get(t *testing.T, c *http.Client, url string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("NewRequest returned error: %v", err)
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func TestBuild_NoTokenSendsNoAuthorization(t *testing.T) {
	rec := &headerRecorder{}
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)

	c := Build(Options{Session: session.New("")})
	get(t, c, server.URL)

	if rec.hasAuth[0] {
		t.Errorf("expected no Authorization header, got %q", rec.auth[0])
	}
}

func TestBuild_TokenAddsRawAuthorization(t *testing.T) {
	rec := &headerRecorder{}
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)

	sess := session.New("")
	c := Build(Options{Session: sess})

	get(t, c, server.URL)
	sess.Set("T")
	get(t, c, server.URL)
	get(t, c, server.URL)

	if rec.hasAuth[0] {
		t.Errorf("first request should be unauthenticated, got %q", rec.auth[0])
	}
	for i := 1; i < 3; i++ {
		if rec.auth[i] != "T" {
			t.Errorf("request %d: Authorization = %q, want %q", i, rec.auth[i], "T")
		}
	}
}

func TestBuild_DefaultsAndUserAgent(t *testing.T) {
	rec := &headerRecorder{}
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)

	c := Build(Options{})
	if c.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.Timeout, DefaultTimeout)
	}
	get(t, c, server.URL)
	if rec.agents[0] != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", rec.agents[0], DefaultUserAgent)
	}

	c = Build(Options{Timeout: time.Second, UserAgent: "custom/1"})
	if c.Timeout != time.Second {
		t.Errorf("Timeout = %v, want 1s", c.Timeout)
	}
	get(t, c, server.URL)
	if rec.agents[1] != "custom/1" {
		t.Errorf("User-Agent = %q, want custom/1", rec.agents[1])
	}
}

func TestAuthorization_DoesNotMutateCallerRequest(t *testing.T) {
	var seen string
	base := RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get(HeaderAuthorization)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})
	rt := Chain(base, Authorization(session.New("abc")))

	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip returned error: %v", err)
	}
	if seen != "abc" {
		t.Errorf("transport saw Authorization %q, want abc", seen)
	}
	if got := req.Header.Get(HeaderAuthorization); got != "" {
		t.Errorf("caller request was mutated: %q", got)
	}
}

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) { return nil, errors.New("no source") }

func TestAuthorization_TokenSourceError(t *testing.T) {
	called := false
	base := RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})
	rt := Chain(base, Authorization(failingSource{}))

	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	_, err := rt.RoundTrip(req)
	if err == nil || !strings.Contains(err.Error(), "resolve token") {
		t.Fatalf("expected resolve token error, got %v", err)
	}
	if called {
		t.Error("base transport should not be called")
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(req)
			})
		}
	}
	base := RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := Chain(base, mark("a"), nil, mark("b"))
	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip returned error: %v", err)
	}

	want := "a,b,base"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestLogging_BodiesAtVerbosityTwo(t *testing.T) {
	rec := &headerRecorder{}
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)

	var mu sync.Mutex
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		mu.Lock()
		lines = append(lines, args)
		mu.Unlock()
	}, funcr.Options{Verbosity: 2})

	c := Build(Options{Logger: logger, Session: session.New("secret")})
	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/login", strings.NewReader(`{"email":"a@b.com"}`))
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if string(body) != `{"message":"ok"}` {
		t.Errorf("body was not restored after logging: %q", body)
	}

	all := strings.Join(lines, "\n")
	for _, want := range []string{"--> request", "<-- response", `a@b.com`, `\"message\":\"ok\"`} {
		if !strings.Contains(all, want) {
			t.Errorf("log output missing %q:\n%s", want, all)
		}
	}
	if strings.Contains(all, "secret") {
		t.Errorf("log output leaked the token:\n%s", all)
	}
}

func TestLogging_SilentBelowVerbosityOne(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 0})

	base := RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})
	rt := Chain(base, Logging(logger))
	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no log lines, got %v", lines)
	}
}
