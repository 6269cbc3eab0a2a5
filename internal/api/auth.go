package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"trip-logbook-service/internal/api/identity"
	"trip-logbook-service/internal/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionCookie = "sessionid"

// authMiddleware resolves the logbook owner. A valid HS256 bearer token makes
// its subject the user; a request without one falls back to an anonymous
// session cookie, minted on first visit. A bad token is rejected outright
// rather than silently downgraded to a session.
func authMiddleware(secret []byte, sessionTTL time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		var owner ports.Owner

		if header := r.Header.Get("Authorization"); header != "" {
			userID, err := bearerSubject(header, secret)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}
			owner.UserID = userID
		} else {
			owner.SessionID = sessionID(w, r, sessionTTL)
		}

		next.ServeHTTP(w, r.WithContext(identity.WithOwner(r.Context(), owner)))
	})
}

func bearerSubject(header string, secret []byte) (string, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", errors.New("authorization header must be a bearer token")
	}
	if len(secret) == 0 {
		return "", errors.New("bearer tokens are not accepted by this server")
	}

	token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

func sessionID(w http.ResponseWriter, r *http.Request, ttl time.Duration) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="logbook"`)
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, "{\"message\":%q}\n", err.Error())
}
