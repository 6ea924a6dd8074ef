// Package views renders the HTML pages (consent, welcome, error) from
// embedded html/template files sharing one themed layout.
package views

import (
	"bytes"
	"embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dropDatabas3/loginconsent/internal/http/errors"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

//go:embed templates/*.html
var files embed.FS

// Page names.
const (
	PageConsent = "consent"
	PageWelcome = "welcome"
	PageError   = "error"
)

var titles = map[string]string{
	PageConsent: "Authorize application",
	PageWelcome: "Welcome",
	PageError:   "Error",
}

type Options struct {
	// Prod oculta causa y detalle en el error page.
	Prod  bool
	Theme Theme
}

type Renderer struct {
	pages    map[string]*template.Template
	prod     bool
	themeCSS template.CSS
}

// New parses every page against the shared layout.
func New(opts Options) (*Renderer, error) {
	if opts.Theme.vars == nil {
		opts.Theme = DefaultTheme()
	}
	r := &Renderer{
		pages:    make(map[string]*template.Template, len(titles)),
		prod:     opts.Prod,
		themeCSS: opts.Theme.CSS(),
	}
	for name := range titles {
		t, err := template.ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

type layoutData struct {
	Title    string
	ThemeCSS template.CSS
	Body     any
}

// Render executes the page into a buffer first so a template failure never
// leaves a half-written 200 behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", layoutData{Title: titles[name], ThemeCSS: r.themeCSS, Body: data}); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// ErrorView is the model of the error page.
type ErrorView struct {
	Status     int
	StatusText string
	Message    string
}

type errorDump struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Status    int      `json:"status"`
	Detail    string   `json:"detail,omitempty"`
	Causes    []string `json:"causes,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// RenderError logs err and renders the generic error page with its status.
// The request id is read from the X-Request-ID response header.
func (r *Renderer) RenderError(w http.ResponseWriter, req *http.Request, err error) {
	appErr := errors.FromError(err)
	if appErr == nil {
		appErr = errors.ErrInternalServerError
	}

	log := logger.From(req.Context())
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("request failed", logger.String("code", appErr.Code), logger.Err(err))
	} else {
		log.Warn("request rejected", logger.String("code", appErr.Code), logger.Err(err))
	}

	view := ErrorView{
		Status:     appErr.HTTPStatus,
		StatusText: http.StatusText(appErr.HTTPStatus),
		Message:    r.dump(appErr, w.Header().Get("X-Request-ID")),
	}
	if rerr := r.Render(w, appErr.HTTPStatus, PageError, view); rerr != nil {
		log.Error("render error page", logger.Err(rerr))
		http.Error(w, http.StatusText(appErr.HTTPStatus), appErr.HTTPStatus)
	}
}

func (r *Renderer) dump(appErr *errors.AppError, requestID string) string {
	d := errorDump{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Status:    appErr.HTTPStatus,
		RequestID: requestID,
	}
	if !r.prod {
		d.Detail = appErr.Detail
		for cause := appErr.Err; cause != nil; cause = stderrors.Unwrap(cause) {
			d.Causes = append(d.Causes, cause.Error())
		}
	}
	b, _ := json.MarshalIndent(d, "", "  ")
	return string(b)
}
