package helpers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/loginconsent/internal/http/errors"
)

func TestReturnTo(t *testing.T) {
	require.Equal(t, "http://127.0.0.1:3000/hydra_login?login_challenge=abc",
		ReturnTo("http://127.0.0.1:3000", "/hydra_login?login_challenge=abc"))
	require.Equal(t, "https://app.example.com/hydra_consent?consent_challenge=x",
		ReturnTo("https://app.example.com/sub", "/hydra_consent?consent_challenge=x"))
}

func TestLoginBrowserURL(t *testing.T) {
	got := LoginBrowserURL("http://kratos", url.Values{"refresh": {"true"}, "return_to": {"http://app/x?a=1"}})
	require.Equal(t, "http://kratos/self-service/login/browser?refresh=true&return_to=http%3A%2F%2Fapp%2Fx%3Fa%3D1", got)
}

func TestSingleQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?a=1&b=&c=1&c=2", nil)
	v, ok := SingleQuery(r, "a")
	require.True(t, ok)
	require.Equal(t, "1", v)
	_, ok = SingleQuery(r, "b")
	require.False(t, ok)
	_, ok = SingleQuery(r, "c")
	require.False(t, ok, "repeated param is rejected")
	_, ok = SingleQuery(r, "missing")
	require.False(t, ok)
}

func TestReadForm(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("challenge=c1&grant_scope=openid&grant_scope=email"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	v, err := ReadForm(httptest.NewRecorder(), r)
	require.NoError(t, err)
	require.Equal(t, "c1", v.Get("challenge"))
	require.Equal(t, []string{"openid", "email"}, v["grant_scope"])
}

func TestReadForm_TooLarge(t *testing.T) {
	body := "challenge=" + strings.Repeat("a", MaxFormBytes+10)
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, err := ReadForm(httptest.NewRecorder(), r)
	require.ErrorIs(t, err, errors.ErrBodyTooLarge)
}
