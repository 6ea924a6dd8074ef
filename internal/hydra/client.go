// Package hydra is a small client for the Ory Hydra admin API: the login and
// consent request endpoints plus the readiness probe.
package hydra

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dropDatabas3/loginconsent/internal/upstream"
)

// AdminClient is what the login/consent delegates need from Hydra.
type AdminClient interface {
	GetLoginRequest(ctx context.Context, challenge string) (*LoginRequest, error)
	AcceptLoginRequest(ctx context.Context, challenge string, body AcceptLoginRequest) (*CompletedRequest, error)
	RejectLoginRequest(ctx context.Context, challenge string, body RejectRequest) (*CompletedRequest, error)

	GetConsentRequest(ctx context.Context, challenge string) (*ConsentRequest, error)
	AcceptConsentRequest(ctx context.Context, challenge string, body AcceptConsentRequest) (*CompletedRequest, error)
	RejectConsentRequest(ctx context.Context, challenge string, body RejectRequest) (*CompletedRequest, error)
}

// Config configures Client.
type Config struct {
	// AdminURL without trailing slash, e.g. http://hydra:4445.
	AdminURL string
	// APIPrefix is prepended to every path ("/admin" for Hydra 2.x).
	APIPrefix string
	Timeout   time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client implements AdminClient over HTTP. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	admin  string
	base   string
	caller *upstream.Caller
}

var _ AdminClient = (*Client)(nil)

// New creates a Client.
func New(cfg Config) *Client {
	return &Client{
		admin:  cfg.AdminURL,
		base:   cfg.AdminURL + cfg.APIPrefix,
		caller: upstream.NewCaller("hydra", cfg.HTTPClient, cfg.Timeout),
	}
}

const (
	loginPath   = "/oauth2/auth/requests/login"
	consentPath = "/oauth2/auth/requests/consent"
)

func (c *Client) url(path, param, challenge string) string {
	return c.base + path + "?" + url.Values{param: {challenge}}.Encode()
}

func (c *Client) GetLoginRequest(ctx context.Context, challenge string) (*LoginRequest, error) {
	var out LoginRequest
	_, err := c.caller.Do(ctx, upstream.Request{
		Op:     "GetLoginRequest",
		Method: http.MethodGet,
		URL:    c.url(loginPath, "login_challenge", challenge),
	}, &out)
	if err != nil {
		return nil, asAPIError(err)
	}
	return &out, nil
}

func (c *Client) AcceptLoginRequest(ctx context.Context, challenge string, body AcceptLoginRequest) (*CompletedRequest, error) {
	return c.complete(ctx, "AcceptLoginRequest", c.url(loginPath+"/accept", "login_challenge", challenge), body)
}

func (c *Client) RejectLoginRequest(ctx context.Context, challenge string, body RejectRequest) (*CompletedRequest, error) {
	return c.complete(ctx, "RejectLoginRequest", c.url(loginPath+"/reject", "login_challenge", challenge), body)
}

func (c *Client) GetConsentRequest(ctx context.Context, challenge string) (*ConsentRequest, error) {
	var out ConsentRequest
	_, err := c.caller.Do(ctx, upstream.Request{
		Op:     "GetConsentRequest",
		Method: http.MethodGet,
		URL:    c.url(consentPath, "consent_challenge", challenge),
	}, &out)
	if err != nil {
		return nil, asAPIError(err)
	}
	return &out, nil
}

func (c *Client) AcceptConsentRequest(ctx context.Context, challenge string, body AcceptConsentRequest) (*CompletedRequest, error) {
	return c.complete(ctx, "AcceptConsentRequest", c.url(consentPath+"/accept", "consent_challenge", challenge), body)
}

func (c *Client) RejectConsentRequest(ctx context.Context, challenge string, body RejectRequest) (*CompletedRequest, error) {
	return c.complete(ctx, "RejectConsentRequest", c.url(consentPath+"/reject", "consent_challenge", challenge), body)
}

// Ready probes GET /health/ready. The health endpoints are never prefixed.
func (c *Client) Ready(ctx context.Context) error {
	_, err := c.caller.Do(ctx, upstream.Request{
		Op:     "Ready",
		Method: http.MethodGet,
		URL:    c.admin + "/health/ready",
	}, nil)
	return asAPIError(err)
}

func (c *Client) complete(ctx context.Context, op, u string, body any) (*CompletedRequest, error) {
	var out CompletedRequest
	_, err := c.caller.Do(ctx, upstream.Request{
		Op:     op,
		Method: http.MethodPut,
		URL:    u,
		Body:   body,
	}, &out)
	if err != nil {
		return nil, asAPIError(err)
	}
	return &out, nil
}
