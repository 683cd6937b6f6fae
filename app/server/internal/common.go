// Package internal provides shared utilities for server subpackages.
package internal

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ClientCookieName is the cookie holding the client id, the scope of stored preferences.
const ClientCookieName = "darkmode-client"

// ClientHeader lets API callers pass the client id without a cookie.
const ClientHeader = "X-Client-ID"

// ClientCookieMaxAge keeps the client id for a year, same as the preference it points to.
const ClientCookieMaxAge = 365 * 24 * 60 * 60

// ClientID returns the client id from the header or the cookie, header first.
// Values that are not UUIDs are ignored.
func ClientID(r *http.Request) (string, bool) {
	if id, ok := normalizeClientID(r.Header.Get(ClientHeader)); ok {
		return id, true
	}
	if cookie, err := r.Cookie(ClientCookieName); err == nil {
		if id, ok := normalizeClientID(cookie.Value); ok {
			return id, true
		}
	}
	return "", false
}

// NewClientID makes a fresh client id.
func NewClientID() string {
	return uuid.NewString()
}

func normalizeClientID(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
