package hydra

// Deps agrupa lo que necesitan los services de hydra.
type Deps struct {
	Login   LoginDeps
	Consent ConsentDeps
}

type Services struct {
	Login   LoginService
	Consent ConsentService
}

func NewServices(d Deps) Services {
	return Services{
		Login:   NewLoginService(d.Login),
		Consent: NewConsentService(d.Consent),
	}
}
