package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

// CookieSettings describes the attributes shared by all cookies the server
// issues.
type CookieSettings struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// SetCookie writes an HTTP-only cookie with the given value that expires
// after ttl.
//
// Example usage:
//
//	utils.SetCookie(w, settings, token.SignedString, 12*time.Hour)
func SetCookie(w http.ResponseWriter, settings CookieSettings, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     settings.Name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   settings.Secure,
		SameSite: settings.SameSite,
	})
}

// ClearCookie instructs the browser to drop the cookie immediately.
func ClearCookie(w http.ResponseWriter, settings CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     settings.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   settings.Secure,
		SameSite: settings.SameSite,
	})
}

// CookieValue returns the value of the named cookie, or an empty string when
// the request does not carry it.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// RandomState returns a URL-safe random string suitable for the OAuth
// "state" parameter.
func RandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error generating random state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
