// Package api provides the typed HTTP client for the Spendo backend.
// Client is the transport; the per-resource services attached to it
// wrap one REST resource each.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spendo/internal/auth"
	apperrors "spendo/internal/errors"
	"spendo/internal/logger"
)

// maxBodyBytes caps how much of a response body is read for decoding
// and diagnostics.
const maxBodyBytes = 1 << 20

// Config holds the dependencies for a Client. Zero-value fields fall
// back to sane defaults, except BaseURL which is required.
type Config struct {
	// BaseURL is the backend root including the /api prefix.
	BaseURL string
	// HTTPClient carries the timeout policy. Defaults to a 30s client.
	HTTPClient *http.Client
	// Tokens supplies the bearer token. Defaults to an empty memory store.
	Tokens auth.TokenStore
	// Logger defaults to the global logger named "api".
	Logger *zap.SugaredLogger
}

// Client performs authenticated JSON requests against the backend. All
// resource services share one Client, so configuration and the token
// store are injected exactly once.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     auth.TokenStore
	log        *zap.SugaredLogger

	Users      *UsersService
	Accounts   *AccountsService
	Incomes    *IncomesService
	Outcomes   *OutcomesService
	Categories *CategoriesService
	Budgets    *BudgetsService
	Transfers  *TransfersService
	Statistics *StatisticsService
	Currencies *CurrenciesService
}

// New creates a Client and its resource services. A malformed base URL
// fails here, before any request is attempted.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidURL, "invalid base URL "+cfg.BaseURL)
	}

	c := &Client{
		baseURL:    base,
		httpClient: cfg.HTTPClient,
		tokens:     cfg.Tokens,
		log:        cfg.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.tokens == nil {
		c.tokens = auth.NewMemoryStore()
	}
	if c.log == nil {
		c.log = logger.Named("api")
	}

	c.Users = &UsersService{client: c}
	c.Accounts = &AccountsService{client: c}
	c.Incomes = &IncomesService{client: c}
	c.Outcomes = &OutcomesService{client: c}
	c.Categories = &CategoriesService{client: c}
	c.Budgets = &BudgetsService{client: c}
	c.Transfers = &TransfersService{client: c}
	c.Statistics = &StatisticsService{client: c}
	c.Currencies = &CurrenciesService{client: c}
	return c, nil
}

// Tokens returns the client's token store.
func (c *Client) Tokens() auth.TokenStore { return c.tokens }

// do performs one HTTP exchange. body is JSON-encoded when non-nil;
// out is decoded into when non-nil and the response carries a body.
// GETs are retried once on transport failure; mutating methods never
// retry.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, err)
		}
	}

	resp, err := c.send(ctx, method, u.String(), payload)
	if err != nil && method == http.MethodGet {
		// One retry for idempotent reads; transport errors only.
		resp, err = c.send(ctx, method, u.String(), payload)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warnw("request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return apperrors.HTTPStatus(resp.StatusCode, raw)
	}

	// Some endpoints legitimately return empty bodies on success.
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &apperrors.AppError{
			Code:     apperrors.ErrDecode.Code,
			Message:  apperrors.ErrDecode.Message,
			Body:     raw,
			Internal: err,
		}
	}
	return nil
}

// send issues a single request with auth and correlation headers.
func (c *Client) send(ctx context.Context, method, rawURL string, payload []byte) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Absence of a token simply omits the header; the server decides.
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("transport error",
			"method", method,
			"url", rawURL,
			"request_id", requestID,
			"error", err,
		)
		return nil, err
	}
	c.log.Debugw("request",
		"method", method,
		"url", rawURL,
		"request_id", requestID,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
