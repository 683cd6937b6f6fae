package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pkgz/routegroup"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/darkmode/app/enum"
	"github.com/umputun/darkmode/app/pref"
	"github.com/umputun/darkmode/app/server/internal"
	"github.com/umputun/darkmode/app/store"
)

func TestHandler_DarkMode(t *testing.T) {
	router, st := newTestRouter(t, pref.Config{})
	id := uuid.NewString()

	t.Run("absent preference is disabled", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/dark-mode", id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"mode":"disabled","checked":false}`, rec.Body.String())
	})

	t.Run("enable", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/v1/dark-mode", id, `{"mode":"enabled"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"mode":"enabled","checked":true}`, rec.Body.String())

		v, err := st.Get(context.Background(), id, "darkMode")
		require.NoError(t, err)
		assert.Equal(t, "enabled", v)

		rec = do(t, router, http.MethodGet, "/api/v1/dark-mode", id, "")
		assert.JSONEq(t, `{"mode":"enabled","checked":true}`, rec.Body.String())
	})

	t.Run("disable", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/v1/dark-mode", id, `{"mode":"disabled"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"mode":"disabled","checked":false}`, rec.Body.String())

		v, err := st.Get(context.Background(), id, "darkMode")
		require.NoError(t, err)
		assert.Equal(t, "disabled", v)
	})

	t.Run("invalid mode", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/v1/dark-mode", id, `{"mode":"sepia"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = do(t, router, http.MethodPut, "/api/v1/dark-mode", id, `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing mode keeps stored preference", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/v1/dark-mode", id, `{"mode":"enabled"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		for _, body := range []string{`{}`, `{"mode":null}`, `{"mood":"enabled"}`} {
			rec = do(t, router, http.MethodPut, "/api/v1/dark-mode", id, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}

		v, err := st.Get(context.Background(), id, "darkMode")
		require.NoError(t, err)
		assert.Equal(t, "enabled", v)
	})

	t.Run("client id required", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/dark-mode", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), internal.ClientHeader)
	})

	t.Run("client id from cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dark-mode", http.NoBody)
		req.AddCookie(&http.Cookie{Name: internal.ClientCookieName, Value: id})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandler_DarkMode_LegacyNull(t *testing.T) {
	router, st := newTestRouter(t, pref.Config{DisabledPolicy: enum.DisabledPolicyWriteNull})
	id := uuid.NewString()

	rec := do(t, router, http.MethodPut, "/api/v1/dark-mode", id, `{"mode":"disabled"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v, err := st.Get(context.Background(), id, "darkMode")
	require.NoError(t, err)
	assert.Equal(t, "null", v)

	rec = do(t, router, http.MethodGet, "/api/v1/dark-mode", id, "")
	assert.JSONEq(t, `{"mode":"disabled","checked":false}`, rec.Body.String())
}

func TestHandler_Storage(t *testing.T) {
	router, _ := newTestRouter(t, pref.Config{})
	id := uuid.NewString()

	t.Run("get missing key", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/storage/darkMode", id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("set and get", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/v1/storage/darkMode", id, "enabled")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, router, http.MethodGet, "/api/v1/storage/darkMode", id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "enabled", rec.Body.String())
	})

	t.Run("raw value drives dark mode", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/dark-mode", id, "")
		assert.JSONEq(t, `{"mode":"enabled","checked":true}`, rec.Body.String())
	})

	t.Run("nested key", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/v1/storage/ui/font", id, "mono")
		require.Equal(t, http.StatusOK, rec.Code)
		rec = do(t, router, http.MethodGet, "/api/v1/storage/ui/font", id, "")
		assert.Equal(t, "mono", rec.Body.String())
	})

	t.Run("empty key", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/v1/storage/", id, "x")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/storage", id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var items []store.Item
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		assert.Len(t, items, 2)
	})

	t.Run("list of other client is empty", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/storage", uuid.NewString(), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(t, router, http.MethodDelete, "/api/v1/storage/ui/font", id, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = do(t, router, http.MethodDelete, "/api/v1/storage/ui/font", id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("clear", func(t *testing.T) {
		rec := do(t, router, http.MethodDelete, "/api/v1/storage", id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"deleted":1}`, rec.Body.String())

		rec = do(t, router, http.MethodGet, "/api/v1/dark-mode", id, "")
		assert.JSONEq(t, `{"mode":"disabled","checked":false}`, rec.Body.String())
	})
}

func TestHandler_StoreErrors(t *testing.T) {
	h := New(failingStore{}, pref.Config{})
	router := routegroup.New(http.NewServeMux())
	router.Mount("/api/v1").Route(func(b *routegroup.Bundle) { h.Register(b) })
	id := uuid.NewString()

	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/dark-mode", ""},
		{http.MethodPut, "/api/v1/dark-mode", `{"mode":"enabled"}`},
		{http.MethodGet, "/api/v1/storage", ""},
		{http.MethodDelete, "/api/v1/storage", ""},
		{http.MethodGet, "/api/v1/storage/k", ""},
		{http.MethodPut, "/api/v1/storage/k", "v"},
		{http.MethodDelete, "/api/v1/storage/k", ""},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(t, router, tc.method, tc.path, id, tc.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string, string) (string, error) { return "", assert.AnError }
func (failingStore) Set(context.Context, string, string, string) error   { return assert.AnError }
func (failingStore) Delete(context.Context, string, string) error        { return assert.AnError }
func (failingStore) List(context.Context, string) ([]store.Item, error)  { return nil, assert.AnError }
func (failingStore) Clear(context.Context, string) (int, error)          { return 0, assert.AnError }

func newTestRouter(t *testing.T, cfg pref.Config) (http.Handler, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	h := New(st, cfg)
	router := routegroup.New(http.NewServeMux())
	router.Mount("/api/v1").Route(func(b *routegroup.Bundle) { h.Register(b) })
	return router, st
}

func do(t *testing.T, h http.Handler, method, path, clientID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if clientID != "" {
		req.Header.Set(internal.ClientHeader, clientID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
