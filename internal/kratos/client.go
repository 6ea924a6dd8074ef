// Package kratos talks to the Ory Kratos public API on behalf of the
// browser (forwarding its cookies) and probes the admin health endpoint.
package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dropDatabas3/loginconsent/internal/upstream"
)

// SessionClient resolves browser sessions.
type SessionClient interface {
	// ToSession resolves the session carried by the browser cookie.
	ToSession(ctx context.Context, cookie string) (*Session, error)
	// LogoutURL creates a browser logout flow and returns its URL.
	LogoutURL(ctx context.Context, cookie string) (string, error)
}

type Config struct {
	PublicURL string
	// AdminURL is only used for readiness; empty skips the probe.
	AdminURL   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	public string
	admin  string
	caller *upstream.Caller
}

var _ SessionClient = (*Client)(nil)

func New(cfg Config) *Client {
	return &Client{
		public: cfg.PublicURL,
		admin:  cfg.AdminURL,
		caller: upstream.NewCaller("kratos", cfg.HTTPClient, cfg.Timeout),
	}
}

func cookieHeader(cookie string) http.Header {
	h := http.Header{}
	if cookie != "" {
		h.Set("Cookie", cookie)
	}
	return h
}

func (c *Client) ToSession(ctx context.Context, cookie string) (*Session, error) {
	var s Session
	raw, err := c.caller.Do(ctx, upstream.Request{
		Op:     "ToSession",
		Method: http.MethodGet,
		URL:    c.public + "/sessions/whoami",
		Header: cookieHeader(cookie),
	}, &s)
	if err != nil {
		return nil, asAPIError(err)
	}
	if s.Identity.ID == "" {
		return nil, errors.New("kratos ToSession: session without identity")
	}
	s.Raw = json.RawMessage(raw)
	return &s, nil
}

func (c *Client) LogoutURL(ctx context.Context, cookie string) (string, error) {
	var flow LogoutFlow
	_, err := c.caller.Do(ctx, upstream.Request{
		Op:     "LogoutURL",
		Method: http.MethodGet,
		URL:    c.public + "/self-service/logout/browser",
		Header: cookieHeader(cookie),
	}, &flow)
	if err != nil {
		return "", asAPIError(err)
	}
	return flow.LogoutURL, nil
}

// Ready probes GET {admin}/health/ready. Without an admin URL there is
// nothing to probe and Kratos counts as ready.
func (c *Client) Ready(ctx context.Context) error {
	if c.admin == "" {
		return nil
	}
	_, err := c.caller.Do(ctx, upstream.Request{
		Op:     "Ready",
		Method: http.MethodGet,
		URL:    c.admin + "/health/ready",
	}, nil)
	return asAPIError(err)
}
