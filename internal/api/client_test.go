package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"spendo/internal/auth"
	apperrors "spendo/internal/errors"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	c, err := New(Config{
		BaseURL:    server.URL + "/api",
		HTTPClient: server.Client(),
		Tokens:     auth.NewMemoryStore(),
	})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c
}

func TestNewRejectsMalformedBaseURL(t *testing.T) {
	for _, bad := range []string{"", "://nope", "localhost:8080/api"} {
		_, err := New(Config{BaseURL: bad})
		if !errors.Is(err, apperrors.ErrInvalidURL) {
			t.Errorf("base URL %q: expected INVALID_URL, got %v", bad, err)
		}
	}
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(t, server)
	_ = c.tokens.SetToken("tok-1")

	if _, err := c.Accounts.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected an X-Request-ID header")
	}
}

func TestNoTokenOmitsAuthorizationHeader(t *testing.T) {
	var sawHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(t, server)
	if _, err := c.Currencies.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawHeader {
		t.Error("Authorization header should be omitted when no token is stored")
	}
}

func TestHTTPStatusFailureCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"not yours"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server)
	_, err := c.Accounts.List(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Code != "HTTP_ERROR" {
		t.Errorf("expected HTTP_ERROR, got %s", appErr.Code)
	}
	if appErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", appErr.StatusCode)
	}
	if string(appErr.Body) != `{"error":"not yours"}` {
		t.Errorf("expected raw body preserved, got %q", appErr.Body)
	}
}

func TestDecodeFailureIsDistinctFromHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"this":"is not a list"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server)
	_, err := c.Accounts.List(context.Background())
	if !errors.Is(err, apperrors.ErrDecode) {
		t.Fatalf("expected DECODE_ERROR, got %v", err)
	}
	if errors.Is(err, apperrors.ErrHTTPStatus) {
		t.Error("decode failure must not match HTTP_ERROR")
	}
}

func TestEmptyBodyOnSuccessIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := newTestClient(t, server)
	if err := c.Budgets.Delete(context.Background(), "b-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type flakyTransport struct {
	failures int32
	next     http.RoundTripper
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if atomic.AddInt32(&f.failures, -1) >= 0 {
		return nil, errors.New("connection reset")
	}
	return f.next.RoundTrip(req)
}

func TestGetRetriesOnceOnTransportError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: &flakyTransport{failures: 1, next: http.DefaultTransport}}
	c, err := New(Config{BaseURL: server.URL + "/api", HTTPClient: httpClient})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	if _, err := c.Accounts.List(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if hits != 1 {
		t.Errorf("expected the retried request to reach the server once, got %d hits", hits)
	}
}

func TestMutatingCallsDoNotRetry(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: &flakyTransport{failures: 1, next: http.DefaultTransport}}
	c, err := New(Config{BaseURL: server.URL + "/api", HTTPClient: httpClient})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	if err := c.Budgets.Delete(context.Background(), "b-1"); !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected TRANSPORT_ERROR, got %v", err)
	}
	if hits != 0 {
		t.Errorf("mutating call must not be retried, server saw %d hits", hits)
	}
}
