// Package auth carries the caller's verified identity through request
// contexts. Authentication itself happens upstream; by the time a request
// reaches a handler the identity headers have already been validated by the
// edge proxy, and this package only transports the result.
package auth

import "context"

type contextKey struct{}

const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
	RoleAdmin    = "admin"
)

type AuthContext struct {
	UserID string
	Role   string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func UserID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.UserID
}

func Role(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.Role
}

func IsLandlord(ctx context.Context) bool {
	return Role(ctx) == RoleLandlord
}

func IsAdmin(ctx context.Context) bool {
	return Role(ctx) == RoleAdmin
}
