package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/feruzlabs/laravel-taskMaster/internal/auth"
	"github.com/feruzlabs/laravel-taskMaster/internal/model"
)

// ================= MIDDLEWARE ================= //

type ctxKey string

// middlewareAuthenticate resolves the presented bearer token to its user
// before passing off requests to another handler. Missing, malformed and
// revoked tokens all come back 401.
func (cfg *APIConfig) middlewareAuthenticate(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := auth.GetBearerToken(r.Header)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "unauthenticated", err)
			return
		}
		user, err := cfg.tokens.UserByToken(r.Context(), tokenString)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "unauthenticated", nil)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKey("user"), user)
		ctx = context.WithValue(ctx, ctxKey("token"), tokenString)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// middlewareLogRequest tags each request with an id and logs it.
func (cfg *APIConfig) middlewareLogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		cfg.logger.Debug("request",
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r)
	})
}

// ============== HELPERS =================

func getContextUser(ctx context.Context) *model.User {
	user, ok := ctx.Value(ctxKey("user")).(*model.User)
	if !ok {
		slog.Warn("failed to retrieve user from context")
		return nil
	}
	return user
}

func getContextToken(ctx context.Context) string {
	token, ok := ctx.Value(ctxKey("token")).(string)
	if !ok {
		slog.Warn("failed to retrieve token from context")
		return ""
	}
	return token
}
