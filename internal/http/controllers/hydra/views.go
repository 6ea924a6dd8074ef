// Package hydra contiene los controllers de /hydra_login y /hydra_consent.
package hydra

import "net/http"

// Views es lo que los controllers necesitan del renderer HTML.
type Views interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
	RenderError(w http.ResponseWriter, r *http.Request, err error)
}
