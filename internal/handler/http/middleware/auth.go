package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthRequired verifies the access token and materializes the acting
// identity from its claims into the request context. Every protected
// route reads the actor from there, never from the token again.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid access token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "Invalid access token")
				return
			}

			actor := actorFromClaims(claims)
			if !actor.Valid() {
				response.HandleError(w, identity.ErrMissingActor)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func actorFromClaims(claims map[string]interface{}) identity.Actor {
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	return identity.Actor{
		UserID:     str("sub"),
		EmployeeID: str("employee_id"),
		CompanyID:  str("company_id"),
		Role:       identity.Role(str("role")),
	}
}

// Actor returns the acting identity stored by AuthRequired.
func Actor(ctx context.Context) (identity.Actor, error) {
	actor, ok := ctx.Value(actorKey).(identity.Actor)
	if !ok || !actor.Valid() {
		return identity.Actor{}, identity.ErrMissingActor
	}
	return actor, nil
}
