package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/mkalil/prepdash/internal/errors"
	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/storage"
)

const defaultTimeout = 10 * time.Second

// Client is the remote access gateway: one HTTP client with base URL,
// timeout, bearer auth from local storage, and centralized handling of
// authorization, validation and server failures.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	kv             storage.KV
	signInURL      string
	onUnauthorized func(signInURL string)
	log            *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout overrides the default 10s request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithSignInURL sets the route passed to the unauthorized callback.
func WithSignInURL(url string) ClientOption {
	return func(c *Client) {
		c.signInURL = url
	}
}

// WithUnauthorizedHandler sets the navigation side effect fired after a 401
// has cleared the stored token. The UI layer supplies the actual redirect.
func WithUnauthorizedHandler(fn func(signInURL string)) ClientOption {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a gateway client. kv supplies the bearer token under
// storage.TokenKey; a missing token simply sends unauthenticated requests.
func New(baseURL string, kv storage.KV, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		kv:         kv,
		log:        logger.Default().WithPrefix("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.NewString()
	log := logger.FromContext(ctx).WithPrefix("api").WithField("request_id", requestID)

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Error("failed to encode request body: %v", err)
			return apperrors.NewInternalError(err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug("%s %s", method, path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			log.Error("%s %s timed out after %v", method, path, time.Since(start))
			return apperrors.NewTimeoutError(err)
		}
		log.Error("%s %s failed: %v", method, path, err)
		return apperrors.NewInternalError(err)
	}
	defer resp.Body.Close()

	log.Debug("%s %s -> %d in %v", method, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return c.handleUnauthorized(ctx, log)

	case resp.StatusCode == http.StatusUnprocessableEntity:
		detail := readBody(resp.Body)
		log.Error("validation failure on %s %s: %s", method, path, detail)
		return apperrors.NewValidationError(detail)

	case resp.StatusCode >= http.StatusInternalServerError:
		detail := readBody(resp.Body)
		log.Error("server failure on %s %s: status=%d, body=%s", method, path, resp.StatusCode, detail)
		return apperrors.NewServerError(resp.StatusCode, detail)

	case resp.StatusCode >= 400:
		detail := readBody(resp.Body)
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeInternal,
			Message: serverMessage(detail),
			Status:  resp.StatusCode,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Error("failed to decode response from %s %s: %v", method, path, err)
			return apperrors.NewInternalError(err)
		}
	}
	return nil
}

// handleUnauthorized clears the stored token and fires the sign-in redirect
// callback. This runs centrally, regardless of which store issued the call.
func (c *Client) handleUnauthorized(ctx context.Context, log *logger.Logger) error {
	log.Warn("unauthorized response, clearing stored token")
	if err := c.kv.Delete(ctx, storage.TokenKey); err != nil {
		log.Error("failed to clear stored token: %v", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(c.signInURL)
	}
	return apperrors.NewUnauthorizedError("authentication required")
}

func (c *Client) token(ctx context.Context) string {
	value, ok, err := c.kv.Get(ctx, storage.TokenKey)
	if err != nil {
		c.log.Error("failed to read stored token: %v", err)
		return ""
	}
	if !ok {
		return ""
	}
	return string(value)
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func readBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))
	return string(body)
}

// serverMessage extracts the "message" field from a JSON error body, falling
// back to the raw body when it does not parse.
func serverMessage(body string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if body == "" {
		return "request failed"
	}
	return body
}
