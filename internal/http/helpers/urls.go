// Package helpers tiene utilidades HTTP compartidas por middlewares,
// services y controllers.
package helpers

import (
	"net/url"
)

// ReturnTo resuelve requestURI (path + query) contra baseURL.
func ReturnTo(baseURL, requestURI string) string {
	base, err := url.Parse(baseURL + "/")
	if err != nil {
		return requestURI
	}
	ref, err := url.Parse(requestURI)
	if err != nil {
		return base.String()
	}
	return base.ResolveReference(ref).String()
}

// LoginBrowserURL arma {kratos}/self-service/login/browser?<params>.
func LoginBrowserURL(kratosBrowserURL string, params url.Values) string {
	return kratosBrowserURL + "/self-service/login/browser?" + params.Encode()
}
