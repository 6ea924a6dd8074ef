package hydra

import "encoding/json"

// OAuth2Client is the subset of the Hydra client registration the consent
// view shows.
type OAuth2Client struct {
	ClientID   string         `json:"client_id"`
	ClientName string         `json:"client_name,omitempty"`
	ClientURI  string         `json:"client_uri,omitempty"`
	LogoURI    string         `json:"logo_uri,omitempty"`
	PolicyURI  string         `json:"policy_uri,omitempty"`
	TosURI     string         `json:"tos_uri,omitempty"`
	Owner      string         `json:"owner,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// DisplayName returns the client name, falling back to the id.
func (c OAuth2Client) DisplayName() string {
	if c.ClientName != "" {
		return c.ClientName
	}
	return c.ClientID
}

// LoginRequest is Hydra's in-flight login attempt.
type LoginRequest struct {
	Challenge                    string       `json:"challenge"`
	Skip                         bool         `json:"skip"`
	Subject                      string       `json:"subject"`
	RequestURL                   string       `json:"request_url"`
	RequestedScope               []string     `json:"requested_scope"`
	RequestedAccessTokenAudience []string     `json:"requested_access_token_audience"`
	SessionID                    string       `json:"session_id,omitempty"`
	Client                       OAuth2Client `json:"client"`
}

// ConsentRequest is Hydra's in-flight consent attempt.
type ConsentRequest struct {
	Challenge                    string          `json:"challenge"`
	Skip                         bool            `json:"skip"`
	Subject                      string          `json:"subject"`
	RequestURL                   string          `json:"request_url"`
	RequestedScope               []string        `json:"requested_scope"`
	RequestedAccessTokenAudience []string        `json:"requested_access_token_audience"`
	LoginChallenge               string          `json:"login_challenge,omitempty"`
	LoginSessionID               string          `json:"login_session_id,omitempty"`
	Context                      json.RawMessage `json:"context,omitempty"`
	Client                       OAuth2Client    `json:"client"`
}

// AcceptLoginRequest is the body of PUT .../login/accept.
// RememberFor is in seconds; 0 means "never expires" for Hydra.
type AcceptLoginRequest struct {
	Subject     string `json:"subject"`
	Remember    bool   `json:"remember,omitempty"`
	RememberFor int64  `json:"remember_for,omitempty"`
	// Context is forwarded to Hydra as-is (the Kratos session snapshot).
	Context any `json:"context,omitempty"`
}

// ConsentRequestSession carries the extra claims for the issued tokens.
type ConsentRequestSession struct {
	AccessToken map[string]any `json:"access_token,omitempty"`
	IDToken     map[string]any `json:"id_token,omitempty"`
}

// AcceptConsentRequest is the body of PUT .../consent/accept.
type AcceptConsentRequest struct {
	GrantScope               []string              `json:"grant_scope"`
	GrantAccessTokenAudience []string              `json:"grant_access_token_audience"`
	Remember                 bool                  `json:"remember"`
	RememberFor              int64                 `json:"remember_for"`
	Session                  ConsentRequestSession `json:"session"`
}

// RejectRequest is the body of PUT .../{login,consent}/reject.
type RejectRequest struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorHint        string `json:"error_hint,omitempty"`
	ErrorDebug       string `json:"error_debug,omitempty"`
	StatusCode       int    `json:"status_code,omitempty"`
}

// CompletedRequest is what Hydra answers to accept/reject: where to send the
// browser next.
type CompletedRequest struct {
	RedirectTo string `json:"redirect_to"`
}
