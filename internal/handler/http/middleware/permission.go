package middleware

import (
	"net/http"

	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
)

// RequirePermission gates a route group on one permission. Services still
// check authorization themselves; this only rejects early with a clean 403.
func RequirePermission(permission identity.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			actor, err := Actor(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if !identity.HasPermission(actor.Role, permission) {
				response.HandleError(w, identity.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ElevatedOnly restricts a route to administrative roles.
func ElevatedOnly(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		actor, err := Actor(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !actor.Elevated() {
			response.HandleError(w, identity.ErrElevatedRoleRequired)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
