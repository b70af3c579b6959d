package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/services"
)

type ReviewHandler struct {
	svc services.ReviewService
}

func NewReviewHandler(svc services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Create serves both POST /reviews and POST /reviews/:addedBy; the latter
// is already ownership-checked by the router.
func (h *ReviewHandler) Create(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}
	body, ok := bindDocument(c, "ReviewHandler.Create")
	if !ok {
		return
	}

	res, err := h.svc.Create(c.Request.Context(), email, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), limitTo(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
