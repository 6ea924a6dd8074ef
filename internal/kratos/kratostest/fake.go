// Package kratostest provides an in-memory kratos.SessionClient for tests.
package kratostest

import (
	"context"
	"sync"

	"github.com/dropDatabas3/loginconsent/internal/kratos"
)

// Fake returns Session/Err from ToSession and Logout/LogoutErr from LogoutURL.
type Fake struct {
	mu sync.Mutex

	Session   *kratos.Session
	Err       error
	Logout    string
	LogoutErr error

	SessionCalls int
	Cookies      []string
}

var _ kratos.SessionClient = (*Fake)(nil)

func (f *Fake) ToSession(_ context.Context, cookie string) (*kratos.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SessionCalls++
	f.Cookies = append(f.Cookies, cookie)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Session, nil
}

func (f *Fake) LogoutURL(context.Context, string) (string, error) {
	if f.LogoutErr != nil {
		return "", f.LogoutErr
	}
	return f.Logout, nil
}

// NewSession builds a session whose Raw matches the decoded fields.
func NewSession(id, identityID string) *kratos.Session {
	return &kratos.Session{
		ID:       id,
		Active:   true,
		Identity: kratos.Identity{ID: identityID, SchemaID: "default"},
		Raw:      []byte(`{"id":"` + id + `","active":true,"identity":{"id":"` + identityID + `","schema_id":"default","traits":{}}}`),
	}
}
