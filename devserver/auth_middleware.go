package devserver

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the authenticated *users.User
const ContextKeyUser ContextKey = "user"

func userFromContext(ctx context.Context) *users.User {
	u, _ := ctx.Value(ContextKeyUser).(*users.User)
	return u
}

// RequireAuth validates the bearer token and loads its user. Deactivated accounts get 403.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				writeMessage(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			userID, err := s.tokens.Verify(parts[1])
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			user, err := s.repos.Users.GetByID(userID)
			if apperrors.Is(err, apperrors.ErrNotFound) {
				writeMessage(w, http.StatusUnauthorized, "Token is not valid")
				return
			}
			if err != nil {
				writeServerError(w, r, err)
				return
			}
			if !user.IsActive {
				writeMessage(w, http.StatusForbidden, "Account has been deactivated")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin must be chained after RequireAuth.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if u := userFromContext(r.Context()); u == nil || !u.IsAdmin {
				writeMessage(w, http.StatusForbidden, "Admin access required")
				return
			}
			next(w, r)
		}
	}
}
