package hydra

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func newFakeAdmin(t *testing.T, status int, resp string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if r.Body != nil && r.ContentLength != 0 {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&rec.Body))
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGetLoginRequest(t *testing.T) {
	srv, calls := newFakeAdmin(t, http.StatusOK, `{
		"challenge":"abc","skip":true,"subject":"user-1",
		"requested_scope":["openid","offline"],
		"client":{"client_id":"app","client_name":"App"}
	}`)
	c := New(Config{AdminURL: srv.URL})

	lr, err := c.GetLoginRequest(context.Background(), "abc")
	require.NoError(t, err)
	require.True(t, lr.Skip)
	require.Equal(t, "user-1", lr.Subject)
	require.Equal(t, []string{"openid", "offline"}, lr.RequestedScope)
	require.Equal(t, "App", lr.Client.DisplayName())

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	require.Equal(t, http.MethodGet, got.Method)
	require.Equal(t, "/oauth2/auth/requests/login", got.Path)
	require.Equal(t, "login_challenge=abc", got.Query)
}

func TestAcceptLoginRequest_BodyAndPrefix(t *testing.T) {
	srv, calls := newFakeAdmin(t, http.StatusOK, `{"redirect_to":"https://hydra/oauth2/auth?login_verifier=v"}`)
	c := New(Config{AdminURL: srv.URL, APIPrefix: "/admin"})

	out, err := c.AcceptLoginRequest(context.Background(), "a b", AcceptLoginRequest{
		Subject:     "user-1",
		Remember:    true,
		RememberFor: 36000,
		Context:     json.RawMessage(`{"id":"sess"}`),
	})
	require.NoError(t, err)
	require.Equal(t, "https://hydra/oauth2/auth?login_verifier=v", out.RedirectTo)

	got := (*calls)[0]
	require.Equal(t, http.MethodPut, got.Method)
	require.Equal(t, "/admin/oauth2/auth/requests/login/accept", got.Path)
	require.Equal(t, "login_challenge=a+b", got.Query)
	require.Equal(t, "user-1", got.Body["subject"])
	require.Equal(t, true, got.Body["remember"])
	require.Equal(t, float64(36000), got.Body["remember_for"])
	require.Equal(t, map[string]any{"id": "sess"}, got.Body["context"])
}

func TestAcceptLoginRequest_SkipBodyOnlySubject(t *testing.T) {
	srv, calls := newFakeAdmin(t, http.StatusOK, `{"redirect_to":"x"}`)
	c := New(Config{AdminURL: srv.URL})

	_, err := c.AcceptLoginRequest(context.Background(), "abc", AcceptLoginRequest{Subject: "user-1"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"subject": "user-1"}, (*calls)[0].Body)
}

func TestConsentEndpoints(t *testing.T) {
	srv, calls := newFakeAdmin(t, http.StatusOK, `{"redirect_to":"x"}`)
	c := New(Config{AdminURL: srv.URL})
	ctx := context.Background()

	_, err := c.AcceptConsentRequest(ctx, "c1", AcceptConsentRequest{
		GrantScope:               []string{"openid"},
		GrantAccessTokenAudience: []string{"api"},
	})
	require.NoError(t, err)
	_, err = c.RejectConsentRequest(ctx, "c1", RejectRequest{Error: "access_denied", ErrorDescription: "no"})
	require.NoError(t, err)
	_, err = c.RejectLoginRequest(ctx, "l1", RejectRequest{Error: "login_required"})
	require.NoError(t, err)

	require.Len(t, *calls, 3)
	require.Equal(t, "/oauth2/auth/requests/consent/accept", (*calls)[0].Path)
	require.Equal(t, "consent_challenge=c1", (*calls)[0].Query)
	require.Equal(t, []any{"openid"}, (*calls)[0].Body["grant_scope"])
	require.Equal(t, "/oauth2/auth/requests/consent/reject", (*calls)[1].Path)
	require.Equal(t, "access_denied", (*calls)[1].Body["error"])
	require.Equal(t, "/oauth2/auth/requests/login/reject", (*calls)[2].Path)
	require.Equal(t, "login_challenge=l1", (*calls)[2].Query)
}

func TestGetConsentRequest_NotFound(t *testing.T) {
	srv, _ := newFakeAdmin(t, http.StatusNotFound, `{"error":"Not Found","error_description":"Unable to locate the resource","status_code":404}`)
	c := New(Config{AdminURL: srv.URL})

	_, err := c.GetConsentRequest(context.Background(), "nope")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
	require.False(t, errors.Is(err, ErrGone))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Not Found", apiErr.Name)
	require.Equal(t, "Unable to locate the resource", apiErr.Description)
	require.Equal(t, "GetConsentRequest", apiErr.Op)
}

func TestGetLoginRequest_Gone(t *testing.T) {
	srv, _ := newFakeAdmin(t, http.StatusGone, `{"redirect_to":"http://hydra/done"}`)
	c := New(Config{AdminURL: srv.URL})

	_, err := c.GetLoginRequest(context.Background(), "used")
	require.True(t, errors.Is(err, ErrGone))
}

func TestReady(t *testing.T) {
	srv, calls := newFakeAdmin(t, http.StatusOK, `{"status":"ok"}`)
	c := New(Config{AdminURL: srv.URL, APIPrefix: "/admin"})

	require.NoError(t, c.Ready(context.Background()))
	require.Equal(t, "/health/ready", (*calls)[0].Path)
}
