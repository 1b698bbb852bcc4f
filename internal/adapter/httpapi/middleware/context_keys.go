package middleware

import (
	"context"

	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

// ContextKey is a private key type so request-scoped values cannot collide
// with other packages.
type ContextKey string

const (
	UserIDCtxKey   = ContextKey("user_id")
	UserRoleCtxKey = ContextKey("user_role")
)

// ActorFromContext rebuilds the authenticated actor from the request context.
// The boolean is false when the request never went through JWTAuth.
func ActorFromContext(ctx context.Context) (moderation.Actor, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	if !ok || id == "" {
		return moderation.Actor{}, false
	}
	role, _ := ctx.Value(UserRoleCtxKey).(string)
	return moderation.Actor{ID: id, Role: moderation.Role(role)}, true
}
