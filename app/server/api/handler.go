// Package api provides HTTP handlers for the preference API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/darkmode/app/enum"
	"github.com/umputun/darkmode/app/pref"
	"github.com/umputun/darkmode/app/server/internal"
	"github.com/umputun/darkmode/app/store"
)

// KVStore defines the interface for scoped key-value storage operations.
type KVStore interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
	List(ctx context.Context, scope string) ([]store.Item, error)
	Clear(ctx context.Context, scope string) (int, error)
}

// Handler handles API requests for /api/v1/* endpoints.
type Handler struct {
	store   KVStore
	prefCfg pref.Config
}

// New creates a new API handler.
func New(st KVStore, prefCfg pref.Config) *Handler {
	return &Handler{store: st, prefCfg: prefCfg}
}

// Register registers API routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /dark-mode", h.handleGetMode)
	r.HandleFunc("PUT /dark-mode", h.handleSetMode)
	r.HandleFunc("GET /storage", h.handleList)
	r.HandleFunc("DELETE /storage", h.handleClear)
	r.HandleFunc("GET /storage/{key...}", h.handleGet)
	r.HandleFunc("PUT /storage/{key...}", h.handleSet)
	r.HandleFunc("DELETE /storage/{key...}", h.handleDelete)
}

// modeResponse is the dark mode state of a client.
type modeResponse struct {
	Mode    enum.Mode `json:"mode"`
	Checked bool      `json:"checked"`
}

// handleGetMode returns the client's dark mode state.
// GET /api/v1/dark-mode
func (h *Handler) handleGetMode(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	page := &pref.Page{}
	ctl, err := pref.New(page, page, store.Scope(h.store, clientID), h.prefCfg)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to make controller")
		return
	}
	if err := ctl.Initialize(r.Context()); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to read preference")
		return
	}
	rest.RenderJSON(w, modeResponse{Mode: ctl.Mode(), Checked: page.Checked()})
}

// handleSetMode sets the client's dark mode state, same as flipping the toggle.
// PUT /api/v1/dark-mode {"mode":"enabled"}
func (h *Handler) handleSetMode(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	var req struct {
		Mode *enum.Mode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request, mode must be enabled or disabled")
		return
	}
	if req.Mode == nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, errors.New("mode is required"), "invalid request, mode must be enabled or disabled")
		return
	}

	page := &pref.Page{}
	ctl, err := pref.New(page, page, store.Scope(h.store, clientID), h.prefCfg)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to make controller")
		return
	}
	if err := ctl.Set(r.Context(), *req.Mode); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to save preference")
		return
	}
	log.Printf("[INFO] dark mode %s for %s via api", ctl.Mode(), clientID)
	rest.RenderJSON(w, modeResponse{Mode: ctl.Mode(), Checked: page.Checked()})
}

// handleList returns all stored items of the client.
// GET /api/v1/storage
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	items, err := h.store.List(r.Context(), clientID)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to list keys")
		return
	}
	if items == nil {
		items = []store.Item{}
	}
	log.Printf("[DEBUG] list keys for %s: %d found", clientID, len(items))
	rest.RenderJSON(w, items)
}

// handleClear removes all stored items of the client.
// DELETE /api/v1/storage
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	n, err := h.store.Clear(r.Context(), clientID)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to clear keys")
		return
	}
	log.Printf("[INFO] cleared %d keys for %s", n, clientID)
	rest.RenderJSON(w, rest.JSON{"deleted": n})
}

// handleGet returns the raw value of a key.
// GET /api/v1/storage/{key}
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	key, ok := h.key(w, r)
	if !ok {
		return
	}
	value, err := h.store.Get(r.Context(), clientID, key)
	if errors.Is(err, store.ErrNotFound) {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "key not found")
		return
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to get key")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(value))
}

// handleSet stores the raw request body under a key.
// PUT /api/v1/storage/{key}
func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	key, ok := h.key(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "failed to read body")
		return
	}
	if err := h.store.Set(r.Context(), clientID, key, string(body)); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to set key")
		return
	}
	log.Printf("[DEBUG] set key %s for %s, %d bytes", key, clientID, len(body))
	w.WriteHeader(http.StatusOK)
}

// handleDelete removes a key.
// DELETE /api/v1/storage/{key}
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	key, ok := h.key(w, r)
	if !ok {
		return
	}
	err := h.store.Delete(r.Context(), clientID, key)
	if errors.Is(err, store.ErrNotFound) {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "key not found")
		return
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to delete key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clientID extracts the client scope, responding 400 if the request has none.
func (h *Handler) clientID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := internal.ClientID(r)
	if !ok {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "client id required in "+internal.ClientHeader)
		return "", false
	}
	return id, true
}

// key extracts the storage key from the path, responding 400 if it is empty.
func (h *Handler) key(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "key is required")
		return "", false
	}
	return key, true
}
