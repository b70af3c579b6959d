package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/utils"
)

type AdminResolver interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAdmin must run after JWTAuth. The caller's role is read from the
// user store on every request, so a role change applies immediately.
func RequireAdmin(users AdminResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Unauthorized Access")
			return
		}

		admin, err := users.IsAdmin(c.Request.Context(), id.Email)
		if err != nil {
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, utils.CodeInternal, "Internal Server Error")
			return
		}
		if !admin {
			abort(c, http.StatusForbidden, utils.CodeForbidden, "Forbidden Access")
			return
		}

		c.Next()
	}
}

// RequireOwner allows the request only when the path parameter equals the
// authenticated email.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Unauthorized Access")
			return
		}
		if c.Param(param) != id.Email {
			abort(c, http.StatusForbidden, utils.CodeForbidden, "Forbidden Access")
			return
		}
		c.Next()
	}
}
