// internal/httpserver/session.go
//
// Session cookie handling.
// The cookie carries an HS256 JWT whose jti is the opaque session id used as
// the session store key. The signing key is derived from the configured
// secret with HKDF so the raw secret never signs anything directly.

package httpserver

import (
	"crypto/sha256"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	sessionCookieName = "vocab_session"
	sessionCookieAge  = 30 * 24 * time.Hour
)

// deriveKey stretches secret into a 32-byte cookie signing key.
func deriveKey(secret string) []byte {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("vocab session cookie"))
	if _, err := io.ReadFull(r, key); err != nil {
		// hkdf only fails past 255*32 bytes of output
		panic(err)
	}
	return key
}

// signSession returns a signed token for session id sid.
func (s *Server) signSession(sid string, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionCookieAge)),
	})
	return t.SignedString(s.key)
}

// parseSession verifies token and returns its session id.
func (s *Server) parseSession(token string) (string, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.ID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.ID, nil
}

// sessionID returns the session id from the request cookie, if valid.
func (s *Server) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	sid, err := s.parseSession(c.Value)
	if err != nil {
		return "", false
	}
	return sid, true
}

// ensureSessionID returns the caller's session id, issuing a new one (and
// its cookie) when the request has none.
func (s *Server) ensureSessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	if sid, ok := s.sessionID(r); ok {
		return sid, nil
	}
	sid := uuid.NewString()
	now := s.now()
	tok, err := s.signSession(sid, now)
	if err != nil {
		return "", err
	}
	sameSite := http.SameSiteLaxMode
	if s.cfg.SecureCookies {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: sameSite,
		Expires:  now.Add(sessionCookieAge),
	})
	return sid, nil
}
