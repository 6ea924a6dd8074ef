package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/loginconsent/internal/http/helpers"
)

// ChallengeConfig configura RequireChallenge.
type ChallengeConfig struct {
	// Query es el param del GET (p.ej. "consent_challenge").
	Query string
	// Form es el campo del POST (p.ej. "challenge").
	Form string
	// Missing se renderiza cuando falta el challenge.
	Missing error
	Views   ErrorRenderer
}

// RequireChallenge corta con el error page antes de tocar Kratos o Hydra si el
// request no trae challenge. En POST deja el form ya parseado (r.PostForm).
func RequireChallenge(cfg ChallengeConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ok bool
			switch r.Method {
			case http.MethodPost:
				values, err := helpers.ReadForm(w, r)
				if err != nil {
					cfg.Views.RenderError(w, r, err)
					return
				}
				ok = values.Get(cfg.Form) != ""
			default:
				_, ok = helpers.SingleQuery(r, cfg.Query)
			}

			if !ok {
				cfg.Views.RenderError(w, r, cfg.Missing)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
