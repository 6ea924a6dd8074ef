package helpers

import (
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/dropDatabas3/loginconsent/internal/http/errors"
)

// MaxFormBytes limita el body de los forms.
const MaxFormBytes = 1 << 20

// ReadForm parsea un form urlencoded con el body limitado a 1MB.
func ReadForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		var mbe *http.MaxBytesError
		if stderrors.As(err, &mbe) {
			return nil, errors.ErrBodyTooLarge.WithCause(err)
		}
		return nil, errors.ErrBadRequest.WithDetail("invalid form body").WithCause(err)
	}
	return r.PostForm, nil
}

// SingleQuery devuelve el valor de un query param sólo si vino exactamente
// una vez y no está vacío.
func SingleQuery(r *http.Request, key string) (string, bool) {
	vs := r.URL.Query()[key]
	if len(vs) != 1 || vs[0] == "" {
		return "", false
	}
	return vs[0], true
}
