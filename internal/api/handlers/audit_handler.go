package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/services"
)

type AuditHandler struct {
	svc services.AuditService
}

func NewAuditHandler(svc services.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// ListByActor returns the privileged mutations made by one admin, newest
// first.
func (h *AuditHandler) ListByActor(c *gin.Context) {
	out, err := h.svc.ListByActor(c.Request.Context(), c.Param("email"), int(limitTo(c)))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
