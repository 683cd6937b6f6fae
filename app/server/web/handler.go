// Package web provides HTTP handlers for the web UI.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/darkmode/app/pref"
	"github.com/umputun/darkmode/app/server/internal"
	"github.com/umputun/darkmode/app/store"
)

//go:generate moq -out mocks/kvstore.go -pkg mocks -skip-ensure -fmt goimports . KVStore

//go:embed static
var staticFS embed.FS

//go:embed templates
var templatesFS embed.FS

// StaticFS returns the embedded static filesystem for external use.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to get static sub-filesystem: %w", err)
	}
	return sub, nil
}

// KVStore defines the interface for scoped key-value storage operations.
type KVStore interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
}

// Config holds web handler configuration.
type Config struct {
	BaseURL       string
	Pref          pref.Config
	SecureCookies bool // mark the client cookie Secure (served over https)
}

// Handler handles web UI requests.
type Handler struct {
	store         KVStore
	tmpl          *template.Template
	baseURL       string
	prefCfg       pref.Config
	secureCookies bool
}

// New creates a new web handler.
func New(st KVStore, cfg Config) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handler{
		store:         st,
		tmpl:          tmpl,
		baseURL:       cfg.BaseURL,
		prefCfg:       cfg.Pref,
		secureCookies: cfg.SecureCookies,
	}, nil
}

// Register registers web UI routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /{$}", h.handleIndex)
	r.HandleFunc("POST /web/dark-mode", h.handleDarkModeChange)
}

// parseTemplates parses all templates from embedded filesystem.
func parseTemplates() (*template.Template, error) {
	tmpl := template.New("")

	baseContent, err := templatesFS.ReadFile("templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("read base.html: %w", err)
	}
	if _, err = tmpl.New("base.html").Parse(string(baseContent)); err != nil {
		return nil, fmt.Errorf("parse base.html: %w", err)
	}

	partials := []string{"toggle"}
	for _, name := range partials {
		content, readErr := templatesFS.ReadFile("templates/partials/" + name + ".html")
		if readErr != nil {
			return nil, fmt.Errorf("read partial %s: %w", name, readErr)
		}
		if _, parseErr := tmpl.New(name).Parse(string(content)); parseErr != nil {
			return nil, fmt.Errorf("parse partial %s: %w", name, parseErr)
		}
	}

	return tmpl, nil
}

// templateData holds data passed to templates.
type templateData struct {
	BodyClass string // class attribute of <body>
	ClassName string // dark mode class, used by the client-side swap
	ControlID string
	Checked   bool
	Mode      string
	BaseURL   string
}

// loadPage builds a page model for the client and runs the page-ready initializer.
// A storage failure is logged and leaves the page in its default (light) state.
func (h *Handler) loadPage(ctx context.Context, clientID string) (*pref.Page, *pref.Controller, error) {
	page := &pref.Page{}
	ctl, err := pref.New(page, page, store.Scope(h.store, clientID), h.prefCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("make controller: %w", err)
	}
	if err := ctl.Initialize(ctx); err != nil {
		log.Printf("[WARN] can't load dark mode preference for %s: %v", clientID, err)
	}
	return page, ctl, nil
}

// pageData converts the page model to template data.
func (h *Handler) pageData(page *pref.Page, ctl *pref.Controller) templateData {
	className := h.prefCfg.ClassName
	if className == "" {
		className = pref.DefaultClassName
	}
	return templateData{
		BodyClass: page.ClassList(),
		ClassName: className,
		ControlID: pref.DefaultControlID,
		Checked:   page.Checked(),
		Mode:      ctl.Mode().String(),
		BaseURL:   h.baseURL,
	}
}

// clientID returns the client id of the request, issuing a new cookie if there is none.
func (h *Handler) clientID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := internal.ClientID(r); ok {
		return id
	}
	id := internal.NewClientID()
	http.SetCookie(w, &http.Cookie{
		Name:     internal.ClientCookieName,
		Value:    id,
		Path:     h.cookiePath(),
		MaxAge:   internal.ClientCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	log.Printf("[DEBUG] issued client id %s", id)
	return id
}

// url returns a URL path with the base URL prefix.
func (h *Handler) url(path string) string {
	return h.baseURL + path
}

// cookiePath returns the path for cookies (base URL with trailing slash or "/").
func (h *Handler) cookiePath() string {
	if h.baseURL == "" {
		return "/"
	}
	return h.baseURL + "/"
}
