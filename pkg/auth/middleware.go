package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tair/shop-tracker/pkg/logger"
)

type contextKey string

const ownerIDKey contextKey = "owner_id"

// Middleware validates the bearer token and stores the owner id in the request context
func Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Logger.Warn().Msg("Missing authorization header")
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.Logger.Warn().Msg("Invalid authorization header format")
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := ValidateToken(parts[1])
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Invalid token")
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, claims.OwnerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OwnerIDFromContext returns the authenticated owner id stored by Middleware
func OwnerIDFromContext(ctx context.Context) (uint, bool) {
	ownerID, ok := ctx.Value(ownerIDKey).(uint)
	return ownerID, ok
}

// ContextWithOwnerID injects an owner id, used by tests
func ContextWithOwnerID(ctx context.Context, ownerID uint) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
