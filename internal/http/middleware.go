package http

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/auth"
	"github.com/micJ-r/ecommerce-app/internal/domain"
	"github.com/micJ-r/ecommerce-app/internal/repository"
)

type ctxKey int

const userContextKey ctxKey = iota

// Authenticator verifies the bearer token and loads the full user record
// into the request context. Handlers downstream trust the context user for
// identity, never client-supplied fields.
func Authenticator(tokens *auth.Manager, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.Subject)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil || !user.IsAdmin() {
			respondError(w, http.StatusUnauthorized, "Not authorized as admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}
