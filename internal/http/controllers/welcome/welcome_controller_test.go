package welcome

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/loginconsent/internal/http/middlewares"
	svc "github.com/dropDatabas3/loginconsent/internal/http/services/welcome"
	"github.com/dropDatabas3/loginconsent/internal/http/views"
	"github.com/dropDatabas3/loginconsent/internal/kratos/kratostest"
)

func TestWelcome(t *testing.T) {
	v, err := views.New(views.Options{})
	require.NoError(t, err)
	k := &kratostest.Fake{Logout: "http://kratos/logout?token=t"}
	c := NewControllers(svc.NewServices(svc.Deps{Kratos: k, BackofficeURL: "https://bo.example.com"}), v)

	sess := kratostest.NewSession("s", "u")
	sess.Identity.MetadataPublic = map[string]any{"overlord": true}
	req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
	req = req.WithContext(middlewares.WithSession(req.Context(), sess))

	rec := httptest.NewRecorder()
	c.Welcome.Welcome(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Welcome to Ory")
	require.Contains(t, body, "http://kratos/logout?token=t")
	require.Contains(t, body, "https://bo.example.com")
}

func TestWelcome_Anonymous(t *testing.T) {
	v, err := views.New(views.Options{})
	require.NoError(t, err)
	c := NewControllers(svc.NewServices(svc.Deps{Kratos: &kratostest.Fake{}}), v)

	rec := httptest.NewRecorder()
	c.Welcome.Welcome(rec, httptest.NewRequest(http.MethodGet, "/welcome", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "not signed in")
}
