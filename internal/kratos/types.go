package kratos

import (
	"encoding/json"
	"time"
)

// Session is the subset of the Kratos whoami answer this app looks at.
// Raw keeps the full body so it can be forwarded untouched.
type Session struct {
	ID                          string     `json:"id"`
	Active                      bool       `json:"active"`
	ExpiresAt                   *time.Time `json:"expires_at,omitempty"`
	AuthenticatedAt             *time.Time `json:"authenticated_at,omitempty"`
	AuthenticatorAssuranceLevel string     `json:"authenticator_assurance_level,omitempty"`
	Identity                    Identity   `json:"identity"`

	Raw json.RawMessage `json:"-"`
}

// Identity is a Kratos identity.
type Identity struct {
	ID                  string              `json:"id"`
	SchemaID            string              `json:"schema_id"`
	State               string              `json:"state,omitempty"`
	Traits              map[string]any      `json:"traits"`
	VerifiableAddresses []VerifiableAddress `json:"verifiable_addresses,omitempty"`
	MetadataPublic      map[string]any      `json:"metadata_public,omitempty"`
}

// VerifiableAddress is an email/phone Kratos can verify.
type VerifiableAddress struct {
	ID       string `json:"id,omitempty"`
	Value    string `json:"value"`
	Verified bool   `json:"verified"`
	Via      string `json:"via"`
	Status   string `json:"status"`
}

// HasUnverifiedAddress reports whether any verifiable address is pending.
func (i Identity) HasUnverifiedAddress() bool {
	for _, a := range i.VerifiableAddresses {
		if !a.Verified {
			return true
		}
	}
	return false
}

// LogoutFlow is the answer of /self-service/logout/browser.
type LogoutFlow struct {
	LogoutURL   string `json:"logout_url"`
	LogoutToken string `json:"logout_token"`
}

// RawIdentity returns the identity object exactly as Kratos sent it, falling
// back to the decoded struct when the raw body is not available.
func (s *Session) RawIdentity() json.RawMessage {
	if s == nil {
		return nil
	}
	if len(s.Raw) > 0 {
		var env struct {
			Identity json.RawMessage `json:"identity"`
		}
		if err := json.Unmarshal(s.Raw, &env); err == nil && len(env.Identity) > 0 {
			return env.Identity
		}
	}
	b, err := json.Marshal(s.Identity)
	if err != nil {
		return nil
	}
	return b
}
