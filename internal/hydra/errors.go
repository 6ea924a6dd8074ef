package hydra

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/loginconsent/internal/upstream"
)

var (
	// ErrNotFound: unknown challenge.
	ErrNotFound = errors.New("hydra: challenge not found")
	// ErrConflict: challenge already handled.
	ErrConflict = errors.New("hydra: challenge conflict")
	// ErrGone: challenge expired or already used.
	ErrGone = errors.New("hydra: challenge gone")
)

// APIError is a non-2xx answer from the Hydra admin API.
type APIError struct {
	StatusCode  int    `json:"-"`
	Name        string `json:"error"`
	Description string `json:"error_description"`
	Hint        string `json:"error_hint"`
	Debug       string `json:"error_debug"`
	Op          string `json:"-"`
	Body        []byte `json:"-"`
}

func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("hydra %s: http %d: %s: %s", e.Op, e.StatusCode, e.Name, e.Description)
	}
	return fmt.Sprintf("hydra %s: http %d", e.Op, e.StatusCode)
}

// Is matches the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrGone:
		return e.StatusCode == http.StatusGone
	}
	return false
}

// asAPIError converts an upstream.Error into an *APIError, leaving transport
// errors alone.
func asAPIError(err error) error {
	var uerr *upstream.Error
	if !errors.As(err, &uerr) {
		return err
	}
	apiErr := &APIError{StatusCode: uerr.StatusCode, Op: uerr.Op, Body: uerr.Body}
	_ = json.Unmarshal(uerr.Body, apiErr)
	return apiErr
}
