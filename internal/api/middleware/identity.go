package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Identity is the verified caller attached by JWTAuth.
type Identity struct {
	Email string
}

type identityCtxKey struct{}

const identityKey = "identity"

func setIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), identityCtxKey{}, id))
}

// IdentityFrom returns the identity attached to the request, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.Email != ""
}

// IdentityFromContext is the context.Context counterpart of IdentityFrom.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok && id.Email != ""
}
