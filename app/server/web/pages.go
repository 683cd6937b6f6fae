package web

import (
	"encoding/json"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/darkmode/app/enum"
)

// handleIndex renders the page with the stored preference already applied.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	clientID := h.clientID(w, r)
	page, ctl, err := h.loadPage(r.Context(), clientID)
	if err != nil {
		log.Printf("[ERROR] failed to load page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.tmpl.ExecuteTemplate(w, "base.html", h.pageData(page, ctl)); err != nil {
		log.Printf("[ERROR] failed to execute template: %v", err)
	}
}

// handleDarkModeChange is the change event of the toggle. The checkbox posts "checked"
// only when it is on, so an absent field means unchecked.
func (h *Handler) handleDarkModeChange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	checked := isChecked(r.PostFormValue("checked"))

	clientID := h.clientID(w, r)
	page, ctl, err := h.loadPage(r.Context(), clientID)
	if err != nil {
		log.Printf("[ERROR] failed to load page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := ctl.Set(r.Context(), enum.ModeFromChecked(checked)); err != nil {
		log.Printf("[ERROR] failed to save dark mode preference for %s: %v", clientID, err)
		http.Error(w, "failed to save preference", http.StatusInternalServerError)
		return
	}
	log.Printf("[INFO] dark mode %s for %s", ctl.Mode(), clientID)

	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, h.url("/"), http.StatusSeeOther)
		return
	}

	// htmx: swap the toggle and let the page flip the body class
	trigger, _ := json.Marshal(map[string]any{
		"darkModeChanged": map[string]bool{"enabled": page.Checked()},
	})
	w.Header().Set("HX-Trigger", string(trigger))
	if err := h.tmpl.ExecuteTemplate(w, "toggle", h.pageData(page, ctl)); err != nil {
		log.Printf("[ERROR] failed to execute template: %v", err)
	}
}

// isChecked interprets a submitted checkbox value.
func isChecked(v string) bool {
	switch v {
	case "on", "true", "1":
		return true
	}
	return false
}
