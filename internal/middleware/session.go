package middleware

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"net/http"

	"github.com/haguru/filmdb/internal/auth"
	"github.com/haguru/filmdb/internal/models/dto"
)

const (
	SessionCookieName = "session_token"

	ErrUnauthorized   = "unauthorized"
	MsgMissingSession = "missing session token"
	MsgInvalidSession = "invalid or expired session token"
)

type contextKey string

const claimsKey contextKey = "session_claims"

// SessionMiddleware lets a request through only when it carries a valid
// session cookie. The token claims are stored on the request context.
func SessionMiddleware(publicKey *ecdsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w, MsgMissingSession)
				return
			}

			claims, err := auth.VerifyToken(cookie.Value, publicKey)
			if err != nil {
				unauthorized(w, MsgInvalidSession)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.CustomClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the session claims set by SessionMiddleware.
func ClaimsFromContext(ctx context.Context) (*auth.CustomClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.CustomClaims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns the id of the logged in user, or "" outside a session.
func UserIDFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: ErrUnauthorized, Message: msg})
}
