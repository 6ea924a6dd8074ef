package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dropDatabas3/loginconsent/internal/http/errors"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// WithRecover captura panics y los renderiza como 500.
func WithRecover(views ErrorRenderer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.From(r.Context()).Error("panic recovered",
						logger.Op("recover"),
						logger.Any("panic", rec),
						logger.String("stack", string(debug.Stack())),
					)
					views.RenderError(w, r, errors.ErrInternalServerError.
						WithDetail("panic recovered").
						WithCause(fmt.Errorf("panic: %v", rec)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
