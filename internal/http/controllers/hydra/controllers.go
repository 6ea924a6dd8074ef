package hydra

import svc "github.com/dropDatabas3/loginconsent/internal/http/services/hydra"

// Controllers agrupa los controllers del dominio hydra.
type Controllers struct {
	Login   *LoginController
	Consent *ConsentController
}

func NewControllers(s svc.Services, views Views) *Controllers {
	return &Controllers{
		Login:   NewLoginController(s.Login, views),
		Consent: NewConsentController(s.Consent, views),
	}
}
