package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/smartattend/attendance-backend-go/internal/domain/auth"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/handler/http/response"
)

type identityCtxKey struct{}

// AuthRequired verifies the access token and stashes the caller's
// identity in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok || !user.ValidRole(user.Role(roleStr)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			identity := user.Identity{
				UserID: userID,
				Role:   user.Role(roleStr),
			}
			ctx := context.WithValue(r.Context(), identityCtxKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// IdentityFromContext returns the identity stored by AuthRequired.
func IdentityFromContext(ctx context.Context) (user.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(user.Identity)
	return identity, ok
}
