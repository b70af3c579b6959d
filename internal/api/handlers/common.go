package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/api/middleware"
	"github.com/yoockh/bikeparts/internal/models"
	"github.com/yoockh/bikeparts/internal/utils"
)

type APIError struct {
	Success bool       `json:"success"`
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// writeError renders err as {success:false, code, message}. The wrapped
// cause is attached to the gin context for the request logger only.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Code != utils.CodeInternal {
		c.JSON(status, APIError{Code: ae.Code, Message: ae.Message})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requireEmail(c *gin.Context) (string, bool) {
	if id, ok := middleware.IdentityFrom(c); ok {
		return id.Email, true
	}
	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "Unauthorized Access", nil))
	return "", false
}

// bindDocument decodes a JSON object body. An empty body is an empty
// document.
func bindDocument(c *gin.Context, op string) (models.Document, bool) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return nil, false
	}
	if doc == nil {
		doc = models.Document{}
	}
	return doc, true
}

// limitTo reads the optional ?limitTo= bound. Anything that is not a
// positive integer means no limit.
func limitTo(c *gin.Context) int64 {
	n, err := strconv.ParseInt(c.Query("limitTo"), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
