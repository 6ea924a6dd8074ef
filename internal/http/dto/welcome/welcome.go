// Package welcome contiene el modelo de la página /welcome.
package welcome

type WelcomeView struct {
	ProjectName        string
	HasSession         bool
	LogoutURL          string
	HasAddressToVerify bool
	IsOverlord         bool
	BackofficeURL      string
	OryAdminURL        string
}
