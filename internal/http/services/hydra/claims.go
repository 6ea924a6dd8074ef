package hydra

import (
	dto "github.com/dropDatabas3/loginconsent/internal/http/dto/hydra"
	"github.com/dropDatabas3/loginconsent/internal/hydra"
	"github.com/dropDatabas3/loginconsent/internal/kratos"
)

// ClaimsConfig define qué se embebe en los tokens al aceptar un consent.
type ClaimsConfig struct {
	// Namespace prefija las claims custom, p.ej. https://public-hydra.dx.dev.
	Namespace string
	// Roles va en id_token[<ns>/claims].role.
	Roles []string
}

func (c ClaimsConfig) session(s *kratos.Session) hydra.ConsentRequestSession {
	identity := map[string]any{}
	if raw := s.RawIdentity(); raw != nil {
		identity["identity"] = raw
	}
	roles := c.Roles
	if roles == nil {
		roles = []string{}
	}
	return hydra.ConsentRequestSession{
		AccessToken: map[string]any{
			c.Namespace + "/identity": identity,
		},
		IDToken: map[string]any{
			c.Namespace + "/identity": identity,
			c.Namespace + "/claims":   map[string]any{"role": roles},
		},
	}
}

// skipConsent: Hydra ya sabe que el usuario concedió esto; se otorga todo lo
// pedido tal cual, sin remember.
func skipConsent(req *hydra.ConsentRequest, claims ClaimsConfig, s *kratos.Session) hydra.AcceptConsentRequest {
	return hydra.AcceptConsentRequest{
		GrantScope:               nonNil(req.RequestedScope),
		GrantAccessTokenAudience: nonNil(req.RequestedAccessTokenAudience),
		Session:                  claims.session(s),
	}
}

// decideConsent: lo que el usuario eligió en el form. remember_for=0 es
// "no expira". La audiencia se hace eco: Hydra ya la validó contra el client.
func decideConsent(req *hydra.ConsentRequest, form dto.ConsentForm, claims ClaimsConfig, s *kratos.Session) hydra.AcceptConsentRequest {
	return hydra.AcceptConsentRequest{
		GrantScope:               nonNil(form.GrantScope),
		GrantAccessTokenAudience: nonNil(req.RequestedAccessTokenAudience),
		Remember:                 form.Remember,
		RememberFor:              0,
		Session:                  claims.session(s),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
