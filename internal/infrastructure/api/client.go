// Package api implements the HTTP client the SDK uses to talk to the remote
// TaskFlow service: JSON encoding, bearer injection from the credential
// store, the automatic refresh-and-retry on 401, and the typed gateways over
// the raw endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/taskflow/taskflow-go/internal/core/ports"
	"github.com/taskflow/taskflow-go/internal/metrics"
)

const refreshPath = "/auth/refresh-token"

// HTTPError is a non-2xx response decoded into the service's error envelope,
// either {"message": ...} or {"error": ...}.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client is the shared HTTP transport for all gateways. The bearer token is
// read from the credential store on every request, so a refresh performed by
// any component is visible to the next call.
type Client struct {
	baseURL string
	http    *http.Client
	creds   ports.CredentialStore
	log     zerolog.Logger

	refreshGroup singleflight.Group
}

// NewClient builds a client against baseURL. timeout <= 0 disables the
// client-side timeout, deferring to the context.
func NewClient(baseURL string, timeout time.Duration, creds ports.CredentialStore, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
	}
}

type requestOpts struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
	// authed requests carry the stored bearer token and participate in the
	// refresh-and-retry cycle on 401.
	authed bool
}

// do performs one request. For authed requests answered with 401, it refreshes
// the access token (deduplicated across concurrent callers) and retries the
// original request exactly once; when the refresh fails, the original 401
// surfaces.
func (c *Client) do(ctx context.Context, opts requestOpts) error {
	var payload []byte
	if opts.body != nil {
		var err error
		payload, err = json.Marshal(opts.body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
	}

	err := c.send(ctx, opts, payload)

	var httpErr *HTTPError
	if opts.authed && errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized && opts.path != refreshPath {
		if rerr := c.refreshToken(ctx); rerr != nil {
			c.log.Debug().Err(rerr).Msg("api: token refresh failed")
			return err
		}
		return c.send(ctx, opts, payload)
	}
	return err
}

func (c *Client) send(ctx context.Context, opts requestOpts, payload []byte) error {
	target := c.baseURL + opts.path
	if len(opts.query) > 0 {
		target += "?" + opts.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, opts.method, target, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if opts.authed {
		token, err := c.creds.Get(ctx)
		if err != nil && !errors.Is(err, ports.ErrNoCredential) {
			return fmt.Errorf("api: read credential: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", opts.method, opts.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	}

	if opts.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(opts.out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}

// refreshToken calls the refresh endpoint and writes the new access token
// into the same credential slot the session store reads. Concurrent 401s
// share a single refresh call.
func (c *Client) refreshToken(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		var out struct {
			AccessToken string `json:"accessToken"`
		}
		err := c.send(ctx, requestOpts{
			method: http.MethodPost,
			path:   refreshPath,
			out:    &out,
			authed: true,
		}, nil)
		if err != nil {
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			return nil, err
		}
		if out.AccessToken == "" {
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			return nil, errors.New("api: refresh response missing accessToken")
		}
		if err := c.creds.Set(ctx, out.AccessToken); err != nil {
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			return nil, fmt.Errorf("api: persist refreshed token: %w", err)
		}
		metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
		c.log.Debug().Msg("api: access token refreshed")
		return nil, nil
	})
	return err
}

func decodeErrorMessage(r io.Reader) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
