package kratos

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/loginconsent/internal/upstream"
)

var (
	// ErrNoSession: whoami answered 401.
	ErrNoSession = errors.New("kratos: no active session")
	// ErrAAL2Required: the session exists but a second factor is needed.
	ErrAAL2Required = errors.New("kratos: session requires aal2")
)

// idAAL2Required es el error.id que manda Kratos con el 403.
const idAAL2Required = "session_aal2_required"

// APIError is a non-2xx answer from Kratos. Kratos wraps its errors as
// {"error": {...}}.
type APIError struct {
	StatusCode int    `json:"-"`
	ID         string `json:"id"`
	Code       int    `json:"code"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
	Op         string `json:"-"`
	Body       []byte `json:"-"`
}

func (e *APIError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("kratos %s: http %d: %s: %s", e.Op, e.StatusCode, e.ID, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("kratos %s: http %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("kratos %s: http %d", e.Op, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNoSession:
		return e.StatusCode == http.StatusUnauthorized
	case ErrAAL2Required:
		return e.StatusCode == http.StatusForbidden && e.ID == idAAL2Required
	}
	return false
}

func asAPIError(err error) error {
	var uerr *upstream.Error
	if !errors.As(err, &uerr) {
		return err
	}
	apiErr := &APIError{StatusCode: uerr.StatusCode, Op: uerr.Op, Body: uerr.Body}
	var env struct {
		Error *APIError `json:"error"`
	}
	env.Error = apiErr
	_ = json.Unmarshal(uerr.Body, &env)
	return apiErr
}
