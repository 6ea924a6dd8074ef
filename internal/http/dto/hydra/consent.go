// Package hydra contiene los DTOs de los flows de login y consent.
package hydra

import (
	"net/url"

	"github.com/dropDatabas3/loginconsent/internal/hydra"
)

// SubmitAllow es el valor del botón que acepta el consent. Cualquier otro
// valor (o ninguno) es un rechazo.
const SubmitAllow = "Allow access"

// ConsentView es el modelo de la vista "consent".
type ConsentView struct {
	Challenge      string
	RequestedScope []string
	User           string
	Client         hydra.OAuth2Client
}

// ConsentForm es el POST de /hydra_consent.
type ConsentForm struct {
	Challenge  string
	Submit     string
	Remember   bool
	GrantScope []string
}

// Allowed indica si el usuario apretó "Allow access".
func (f ConsentForm) Allowed() bool { return f.Submit == SubmitAllow }

// ParseConsentForm lee el form ya parseado. grant_scope repetido viene como
// lista; un solo valor es una lista de uno y ninguno una lista vacía.
func ParseConsentForm(v url.Values) ConsentForm {
	scopes := make([]string, 0, len(v["grant_scope"]))
	scopes = append(scopes, v["grant_scope"]...)
	return ConsentForm{
		Challenge:  v.Get("challenge"),
		Submit:     v.Get("submit"),
		Remember:   v.Get("remember") != "",
		GrantScope: scopes,
	}
}

// LoginInput es lo que el controller de /hydra_login le pasa al service.
type LoginInput struct {
	Challenge string
	// Cookie es el header Cookie crudo del browser, para Kratos.
	Cookie string
	// RequestURI es path+query del request original (para el return_to).
	RequestURI string
}

// ConsentResult: o bien RedirectTo (skip) o bien View para renderizar.
type ConsentResult struct {
	RedirectTo string
	View       *ConsentView
}
