// Package hydratest provides an in-memory hydra.AdminClient for tests.
package hydratest

import (
	"context"
	"sync"

	"github.com/dropDatabas3/loginconsent/internal/hydra"
)

// Call is one recorded AdminClient invocation.
type Call struct {
	Op        string
	Challenge string
	Body      any
}

// Fake answers from its fields and records every call. Zero value is usable:
// lookups return empty requests and completions return RedirectTo.
type Fake struct {
	mu sync.Mutex

	Login   *hydra.LoginRequest
	Consent *hydra.ConsentRequest
	// RedirectTo is returned by every accept/reject.
	RedirectTo string
	// Errs fails the named op (e.g. "GetLoginRequest").
	Errs map[string]error

	Calls []Call
}

var _ hydra.AdminClient = (*Fake)(nil)

func (f *Fake) record(op, challenge string, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Op: op, Challenge: challenge, Body: body})
	return f.Errs[op]
}

// Ops returns the recorded op names in order.
func (f *Fake) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// Last returns the last call with the given op.
func (f *Fake) Last(op string) (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Calls) - 1; i >= 0; i-- {
		if f.Calls[i].Op == op {
			return f.Calls[i], true
		}
	}
	return Call{}, false
}

func (f *Fake) completed() *hydra.CompletedRequest {
	return &hydra.CompletedRequest{RedirectTo: f.RedirectTo}
}

func (f *Fake) GetLoginRequest(_ context.Context, challenge string) (*hydra.LoginRequest, error) {
	if err := f.record("GetLoginRequest", challenge, nil); err != nil {
		return nil, err
	}
	if f.Login == nil {
		return &hydra.LoginRequest{Challenge: challenge}, nil
	}
	lr := *f.Login
	return &lr, nil
}

func (f *Fake) AcceptLoginRequest(_ context.Context, challenge string, body hydra.AcceptLoginRequest) (*hydra.CompletedRequest, error) {
	if err := f.record("AcceptLoginRequest", challenge, body); err != nil {
		return nil, err
	}
	return f.completed(), nil
}

func (f *Fake) RejectLoginRequest(_ context.Context, challenge string, body hydra.RejectRequest) (*hydra.CompletedRequest, error) {
	if err := f.record("RejectLoginRequest", challenge, body); err != nil {
		return nil, err
	}
	return f.completed(), nil
}

func (f *Fake) GetConsentRequest(_ context.Context, challenge string) (*hydra.ConsentRequest, error) {
	if err := f.record("GetConsentRequest", challenge, nil); err != nil {
		return nil, err
	}
	if f.Consent == nil {
		return &hydra.ConsentRequest{Challenge: challenge}, nil
	}
	cr := *f.Consent
	return &cr, nil
}

func (f *Fake) AcceptConsentRequest(_ context.Context, challenge string, body hydra.AcceptConsentRequest) (*hydra.CompletedRequest, error) {
	if err := f.record("AcceptConsentRequest", challenge, body); err != nil {
		return nil, err
	}
	return f.completed(), nil
}

func (f *Fake) RejectConsentRequest(_ context.Context, challenge string, body hydra.RejectRequest) (*hydra.CompletedRequest, error) {
	if err := f.record("RejectConsentRequest", challenge, body); err != nil {
		return nil, err
	}
	return f.completed(), nil
}
