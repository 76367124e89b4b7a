// internal/session/session.go
//
// Server-issued admin session.
//
// Context
//   The admin panel must persist a “logged-in” flag between requests.
//   Earlier revisions of the site compared a password in the browser and
//   stashed a flag in sessionStorage; that ships the comparison secret
//   to the client and is trivially bypassed.  Here the password check
//   happens server-side only (components/admin), and what the browser
//   stores is an opaque, HMAC-signed, expiring token.  Tampering with
//   the payload or the signature invalidates the cookie.
//
//   Token layout: base64url("admin|<unix-expiry>") + "." + base64url(HMAC).
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	cookieName = "summit_admin"
	subject    = "admin" // single admin principal
	defaultTTL = 12 * time.Hour
)

var (
	secret []byte
	ttl    = defaultTTL
)

// Configure installs the signing secret and session lifetime.  Must be
// called once during boot, before any handler runs.
func Configure(signingSecret string, sessionTTL time.Duration) {
	secret = []byte(signingSecret)
	if sessionTTL > 0 {
		ttl = sessionTTL
	}
}

// Login issues a fresh signed session cookie.
func Login(w http.ResponseWriter, r *http.Request) {
	exp := time.Now().Add(ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sign(exp),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// Logout clears the session cookie.
func Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Valid reports whether r carries an untampered, unexpired session.
func Valid(r *http.Request) bool {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return false
	}
	return verify(c.Value, time.Now())
}

/*──────────────────────────── token internals ─────────────────────────────*/

var enc = base64.RawURLEncoding

func sign(exp time.Time) string {
	payload := subject + "|" + strconv.FormatInt(exp.Unix(), 10)
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return enc.EncodeToString([]byte(payload)) + "." + enc.EncodeToString(mac.Sum(nil))
}

func verify(token string, now time.Time) bool {
	payloadB64, sigB64, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	payload, err := enc.DecodeString(payloadB64)
	if err != nil {
		return false
	}
	sig, err := enc.DecodeString(sigB64)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return false
	}

	sub, expRaw, ok := strings.Cut(string(payload), "|")
	if !ok || sub != subject {
		return false
	}
	exp, err := strconv.ParseInt(expRaw, 10, 64)
	if err != nil {
		return false
	}
	return now.Unix() < exp
}
