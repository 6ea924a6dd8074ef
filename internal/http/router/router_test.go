package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	healthctrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/health"
	hydractrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/hydra"
	welcomectrl "github.com/dropDatabas3/loginconsent/internal/http/controllers/welcome"
	mw "github.com/dropDatabas3/loginconsent/internal/http/middlewares"
	healthsvc "github.com/dropDatabas3/loginconsent/internal/http/services/health"
	hydrasvc "github.com/dropDatabas3/loginconsent/internal/http/services/hydra"
	welcomesvc "github.com/dropDatabas3/loginconsent/internal/http/services/welcome"
	"github.com/dropDatabas3/loginconsent/internal/http/views"
	"github.com/dropDatabas3/loginconsent/internal/hydra"
	"github.com/dropDatabas3/loginconsent/internal/hydra/hydratest"
	"github.com/dropDatabas3/loginconsent/internal/kratos"
	"github.com/dropDatabas3/loginconsent/internal/kratos/kratostest"
	"github.com/dropDatabas3/loginconsent/internal/metrics"
)

const redirect = "https://hydra.example.com/oauth2/auth?verifier=1"

type env struct {
	hydra  *hydratest.Fake
	kratos *kratostest.Fake
	srv    *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		hydra:  &hydratest.Fake{RedirectTo: redirect},
		kratos: &kratostest.Fake{Session: kratostest.NewSession("s1", "user-1")},
	}
	v, err := views.New(views.Options{})
	require.NoError(t, err)

	metricsHandler, err := metrics.Register(prometheus.NewRegistry())
	require.NoError(t, err)

	h := New(Deps{
		Hydra: hydractrl.NewControllers(hydrasvc.NewServices(hydrasvc.Deps{
			Login: hydrasvc.LoginDeps{
				Hydra: e.hydra, Kratos: e.kratos,
				BaseURL: "http://127.0.0.1:3000", KratosBrowserURL: "http://127.0.0.1:4433",
				RememberFor: 10 * time.Hour,
			},
			Consent: hydrasvc.ConsentDeps{Hydra: e.hydra, Claims: hydrasvc.ClaimsConfig{Namespace: "https://ns", Roles: []string{"admin"}}},
		}), v),
		Welcome: welcomectrl.NewControllers(welcomesvc.NewServices(welcomesvc.Deps{Kratos: e.kratos}), v),
		Health:  healthctrl.NewControllers(healthsvc.NewServices(healthsvc.Deps{})),
		Views:   v,
		Session: mw.SessionConfig{Kratos: e.kratos, BaseURL: "http://127.0.0.1:3000", KratosBrowserURL: "http://127.0.0.1:4433"},
		Metrics: metricsHandler,
	})
	e.srv = httptest.NewServer(h)
	t.Cleanup(e.srv.Close)
	return e
}

func noFollow() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
}

func TestRouter_LoginRedirect(t *testing.T) {
	e := newEnv(t)
	e.hydra.Login = &hydra.LoginRequest{Skip: true, Subject: "user-1"}

	resp, err := noFollow().Get(e.srv.URL + "/hydra_login?login_challenge=lc")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, redirect, resp.Header.Get("Location"))
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRouter_ConsentRequiresSession(t *testing.T) {
	e := newEnv(t)
	e.kratos.Err = &kratos.APIError{StatusCode: http.StatusUnauthorized}

	resp, err := noFollow().Get(e.srv.URL + "/hydra_consent?consent_challenge=cc")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/self-service/login/browser", loc.Path)
	require.Equal(t, "http://127.0.0.1:3000/hydra_consent?consent_challenge=cc", loc.Query().Get("return_to"))
	require.Empty(t, e.hydra.Calls)
}

func TestRouter_ConsentPost(t *testing.T) {
	e := newEnv(t)
	e.hydra.Consent = &hydra.ConsentRequest{RequestedScope: []string{"openid"}}

	form := url.Values{"challenge": {"cc"}, "submit": {"Allow access"}, "grant_scope": {"openid"}}
	resp, err := noFollow().Post(e.srv.URL+"/hydra_consent", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, redirect, resp.Header.Get("Location"))
	require.Equal(t, []string{"GetConsentRequest", "AcceptConsentRequest"}, e.hydra.Ops())
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	e := newEnv(t)

	resp, err := http.Get(e.srv.URL + "/nope")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, string(body), "ROUTE_NOT_FOUND")

	req, _ := http.NewRequest(http.MethodDelete, e.srv.URL+"/hydra_login", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := newEnv(t)

	resp, err := http.Get(e.srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(e.srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(e.srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "http_requests_total")
}

func TestRouter_Welcome(t *testing.T) {
	e := newEnv(t)

	resp, err := http.Get(e.srv.URL + "/welcome")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Welcome to Ory")
}

func TestRouter_ConsentMissingChallengeSkipsSessionLookup(t *testing.T) {
	e := newEnv(t)
	e.kratos.Err = &kratos.APIError{StatusCode: http.StatusUnauthorized}

	resp, err := noFollow().Get(e.srv.URL + "/hydra_consent")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), "MISSING_CONSENT_CHALLENGE")

	resp, err = noFollow().Post(e.srv.URL+"/hydra_consent", "application/x-www-form-urlencoded",
		strings.NewReader(url.Values{"submit": {"Allow access"}}.Encode()))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.Zero(t, e.kratos.SessionCalls)
	require.Empty(t, e.hydra.Calls)
}

func TestRouter_ConsentMissingChallengeWithSession(t *testing.T) {
	e := newEnv(t)

	resp, err := noFollow().Get(e.srv.URL + "/hydra_consent?consent_challenge=")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Zero(t, e.kratos.SessionCalls)
}
