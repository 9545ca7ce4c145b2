package api_context

import "context"

type ctxKey string

const (
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
)

// AuthUserIDFromContext returns the authenticated requester identity
// (the auth provider's subject claim).
func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok && id != ""
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}

// HasRole reports whether the authenticated requester carries the given role.
func HasRole(ctx context.Context, role string) bool {
	roles, ok := AuthRolesFromContext(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
