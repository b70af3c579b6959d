package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/utils"
)

type apiError struct {
	Success bool       `json:"success"`
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func abort(c *gin.Context, status int, code utils.Code, msg string) {
	c.AbortWithStatusJSON(status, apiError{Code: code, Message: msg})
}

type TokenVerifier interface {
	Verify(token string) (email string, err error)
}

// JWTAuth rejects a request without an Authorization header with 401 and
// one whose bearer token does not verify with 403. It never touches the
// user store.
func JWTAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Unauthorized Access")
			return
		}

		var raw string
		if parts := strings.Fields(header); len(parts) > 1 {
			raw = parts[1]
		}

		email, err := tokens.Verify(raw)
		if err != nil {
			_ = c.Error(err)
			abort(c, http.StatusForbidden, utils.CodeForbidden, "Forbidden Access")
			return
		}

		setIdentity(c, Identity{Email: email})
		c.Next()
	}
}
