// Package errors holds the AppError catalogue used by every HTTP handler and
// the mapping from upstream (Hydra/Kratos) failures to it.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/loginconsent/internal/hydra"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError escribe el error como JSON (endpoints no-browser: health).
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}

// FromError convierte cualquier error en *AppError:
//   - *AppError en la cadena: se devuelve tal cual
//   - Hydra 404/409/410: CHALLENGE_* con el body de Hydra como detalle
//   - Hydra 5xx: UPSTREAM_ERROR
//   - resto: INTERNAL_SERVER_ERROR conservando la causa
//
// Toda falla de Hydra termina en un 500 (debug page); sólo cambia el código.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var hErr *hydra.APIError
	if stderrors.As(err, &hErr) {
		detail := string(hErr.Body)
		switch {
		case stderrors.Is(err, hydra.ErrNotFound):
			return ErrChallengeNotFound.WithDetail(detail).WithCause(err)
		case stderrors.Is(err, hydra.ErrConflict):
			return ErrChallengeConflict.WithDetail(detail).WithCause(err)
		case stderrors.Is(err, hydra.ErrGone):
			return ErrChallengeExpired.WithDetail(detail).WithCause(err)
		case hErr.StatusCode >= 500:
			return ErrUpstream.WithDetail(detail).WithCause(err)
		}
	}
	return ErrInternalServerError.WithCause(err)
}
