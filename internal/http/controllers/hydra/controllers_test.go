package hydra

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/loginconsent/internal/http/middlewares"
	svc "github.com/dropDatabas3/loginconsent/internal/http/services/hydra"
	"github.com/dropDatabas3/loginconsent/internal/http/views"
	"github.com/dropDatabas3/loginconsent/internal/hydra"
	"github.com/dropDatabas3/loginconsent/internal/hydra/hydratest"
	"github.com/dropDatabas3/loginconsent/internal/kratos/kratostest"
)

const hydraRedirect = "https://hydra.example.com/oauth2/auth?client_id=app&consent_verifier=abc%2Fdef"

type fixture struct {
	hydra  *hydratest.Fake
	kratos *kratostest.Fake
	ctrls  *Controllers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	v, err := views.New(views.Options{})
	require.NoError(t, err)

	f := &fixture{
		hydra:  &hydratest.Fake{RedirectTo: hydraRedirect},
		kratos: &kratostest.Fake{Session: kratostest.NewSession("s1", "user-1")},
	}
	f.ctrls = NewControllers(svc.NewServices(svc.Deps{
		Login: svc.LoginDeps{
			Hydra:            f.hydra,
			Kratos:           f.kratos,
			BaseURL:          "http://127.0.0.1:3000",
			KratosBrowserURL: "http://127.0.0.1:4433",
			RememberFor:      10 * time.Hour,
		},
		Consent: svc.ConsentDeps{
			Hydra:  f.hydra,
			Claims: svc.ClaimsConfig{Namespace: "https://public-hydra.dx.dev", Roles: []string{"admin"}},
		},
	}), v)
	return f
}

func withSession(r *http.Request) *http.Request {
	return r.WithContext(middlewares.WithSession(r.Context(), kratostest.NewSession("s1", "user-1")))
}

func postForm(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/hydra_consent", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return withSession(r)
}

func TestLogin_MissingChallengeNoUpstreamCall(t *testing.T) {
	for _, target := range []string{"/hydra_login", "/hydra_login?login_challenge=", "/hydra_login?login_challenge=a&login_challenge=b"} {
		f := newFixture(t)
		rec := httptest.NewRecorder()
		f.ctrls.Login.Login(rec, httptest.NewRequest(http.MethodGet, target, nil))

		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.Contains(t, rec.Body.String(), "MISSING_LOGIN_CHALLENGE")
		require.Empty(t, f.hydra.Calls)
		require.Zero(t, f.kratos.SessionCalls)
	}
}

func TestLogin_SkipRedirectsToExactURL(t *testing.T) {
	f := newFixture(t)
	f.hydra.Login = &hydra.LoginRequest{Skip: true, Subject: "user-1"}

	rec := httptest.NewRecorder()
	f.ctrls.Login.Login(rec, httptest.NewRequest(http.MethodGet, "/hydra_login?login_challenge=lc", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, hydraRedirect, rec.Header().Get("Location"))
	require.Zero(t, f.kratos.SessionCalls)
}

func TestLogin_ForwardsCookie(t *testing.T) {
	f := newFixture(t)
	f.hydra.Login = &hydra.LoginRequest{}

	req := httptest.NewRequest(http.MethodGet, "/hydra_login?login_challenge=lc", nil)
	req.Header.Set("Cookie", "ory_kratos_session=zzz")
	rec := httptest.NewRecorder()
	f.ctrls.Login.Login(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, hydraRedirect, rec.Header().Get("Location"))
	require.Equal(t, []string{"ory_kratos_session=zzz"}, f.kratos.Cookies)
}

func TestLogin_UpstreamErrorRendersErrorPage(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusInternalServerError, "UPSTREAM_ERROR"},
		{http.StatusNotFound, "CHALLENGE_NOT_FOUND"},
		{http.StatusGone, "CHALLENGE_EXPIRED"},
		{http.StatusBadRequest, "INTERNAL_SERVER_ERROR"},
	}
	for _, tc := range cases {
		f := newFixture(t)
		f.hydra.Errs = map[string]error{"GetLoginRequest": &hydra.APIError{StatusCode: tc.status, Body: []byte(`{"error":"hydra says no"}`)}}

		rec := httptest.NewRecorder()
		f.ctrls.Login.Login(rec, httptest.NewRequest(http.MethodGet, "/hydra_login?login_challenge=lc", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code, "hydra status %d", tc.status)
		require.Contains(t, rec.Body.String(), tc.code)
	}
}

func TestConsentShow_MissingChallenge(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.ctrls.Consent.Show(rec, withSession(httptest.NewRequest(http.MethodGet, "/hydra_consent", nil)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, f.hydra.Calls)
}

func TestConsentShow_RendersView(t *testing.T) {
	f := newFixture(t)
	f.hydra.Consent = &hydra.ConsentRequest{
		Subject:        "user-1",
		RequestedScope: []string{"openid", "offline_access"},
		Client:         hydra.OAuth2Client{ClientID: "app", ClientName: "Shiny App"},
	}

	rec := httptest.NewRecorder()
	f.ctrls.Consent.Show(rec, withSession(httptest.NewRequest(http.MethodGet, "/hydra_consent?consent_challenge=cc", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `value="cc"`)
	require.Contains(t, body, `value="openid"`)
	require.Contains(t, body, `value="offline_access"`)
	require.Contains(t, body, "Shiny App")
	require.Contains(t, body, "user-1")
}

func TestConsentShow_SkipRedirects(t *testing.T) {
	f := newFixture(t)
	f.hydra.Consent = &hydra.ConsentRequest{Skip: true, RequestedScope: []string{"openid"}}

	rec := httptest.NewRecorder()
	f.ctrls.Consent.Show(rec, withSession(httptest.NewRequest(http.MethodGet, "/hydra_consent?consent_challenge=cc", nil)))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, hydraRedirect, rec.Header().Get("Location"))
	require.Equal(t, []string{"GetConsentRequest", "AcceptConsentRequest"}, f.hydra.Ops())
}

func TestConsentDecide_SingleScopeBecomesList(t *testing.T) {
	f := newFixture(t)
	f.hydra.Consent = &hydra.ConsentRequest{RequestedScope: []string{"openid", "email"}}

	rec := httptest.NewRecorder()
	f.ctrls.Consent.Decide(rec, postForm(url.Values{
		"challenge":   {"cc"},
		"submit":      {"Allow access"},
		"grant_scope": {"openid"},
	}))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, hydraRedirect, rec.Header().Get("Location"))

	call, ok := f.hydra.Last("AcceptConsentRequest")
	require.True(t, ok)
	require.Equal(t, "cc", call.Challenge)
	require.Equal(t, []string{"openid"}, call.Body.(hydra.AcceptConsentRequest).GrantScope)
}

func TestConsentDecide_DenyRejectsOnly(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.ctrls.Consent.Decide(rec, postForm(url.Values{"challenge": {"cc"}, "submit": {"Deny access"}}))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, hydraRedirect, rec.Header().Get("Location"))
	require.Equal(t, []string{"RejectConsentRequest"}, f.hydra.Ops())
}

func TestConsentDecide_MissingChallenge(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.ctrls.Consent.Decide(rec, postForm(url.Values{"submit": {"Allow access"}}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, f.hydra.Calls)
}
