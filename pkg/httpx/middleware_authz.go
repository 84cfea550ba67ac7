package httpx

import (
	"net/http"
	"slices"
)

// RequireAnyRole rejects callers whose role claim is not listed.
func RequireAnyRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, RoleFromContext(r.Context())) {
				WriteError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAMR rejects sessions whose amr claim lacks method.
func RequireAMR(method string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := ClaimsFromContext(r.Context())
			if !ok || !c.HasAMR(method) {
				WriteError(w, http.StatusForbidden, "mfa_required", "complete multi-factor authentication first")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminMFA is the gate in front of every moderation route: the
// role check runs before the MFA check so a non-admin sees "forbidden".
func RequireAdminMFA(adminRole, mfaMethod string) Middleware {
	role := RequireAnyRole(adminRole)
	mfa := RequireAMR(mfaMethod)
	return func(next http.Handler) http.Handler {
		return role(mfa(next))
	}
}
