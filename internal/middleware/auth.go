package middleware

import (
	"net/http"
	"strings"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/handler"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/service"
)

// UserLookup is the slice of the user repository the auth middleware needs.
type UserLookup interface {
	ByID(id string) (*model.User, error)
}

// Auth resolves the bearer token and, when valid, attaches the user to the
// request context. Requests without a usable credential continue
// unauthenticated; RequireAuth is where that becomes a 401.
func Auth(authService *service.AuthService, userService UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByID(userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with a JSON 401.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			handler.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// bearerToken accepts both "Bearer <token>" and a raw token value, matching
// clients that forward the Authorization header verbatim.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return rest
	}
	return auth
}
