package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest-go/internal/crypto"
)

type contextKey string

const claimsKey contextKey = "sessionClaims"

// TokenVerifier checks a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*crypto.Claims, error)
}

// DenyFunc answers a request that carries no valid session.
type DenyFunc func(w http.ResponseWriter, r *http.Request)

// RequireSession returns middleware that reads the session token from the
// named cookie and verifies it. Requests without a valid token are handed to
// deny and never reach next. Identity is taken only from the verified token.
func RequireSession(verifier TokenVerifier, cookieName string, deny DenyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				deny(w, r)
				return
			}

			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				slog.DebugContext(r.Context(), "session rejected", "path", r.URL.Path, "reason", err)
				deny(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RejectUnauthorized answers API requests with 401 and a JSON error.
func RejectUnauthorized(w http.ResponseWriter, _ *http.Request) {
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

// RedirectTo sends browser navigations to loginPath.
func RedirectTo(loginPath string) DenyFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
	}
}

// ClaimsFromContext returns the verified session claims of the request.
func ClaimsFromContext(ctx context.Context) (*crypto.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*crypto.Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
