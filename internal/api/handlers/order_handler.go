package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/models"
	"github.com/yoockh/bikeparts/internal/services"
	"github.com/yoockh/bikeparts/internal/utils"
)

type OrderHandler struct {
	svc   services.OrderService
	users services.UserService
}

func NewOrderHandler(svc services.OrderService, users services.UserService) *OrderHandler {
	return &OrderHandler{svc: svc, users: users}
}

func (h *OrderHandler) Create(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}
	body, ok := bindDocument(c, "OrderHandler.Create")
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

// List is mounted behind RequireAdmin.
func (h *OrderHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), limitTo(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetByKey serves GET /orders/:key. An email key lists the caller's own
// orders; anything else is an order id.
func (h *OrderHandler) GetByKey(c *gin.Context) {
	key := c.Param("key")
	if strings.Contains(key, "@") {
		h.listByOwner(c, key)
		return
	}

	order, ok := h.authorize(c, key)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) listByOwner(c *gin.Context, owner string) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}
	if owner != email {
		writeError(c, utils.E(utils.CodeForbidden, "OrderHandler.ListByOwner", "Forbidden Access", nil))
		return
	}

	out, err := h.svc.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Update(c *gin.Context) {
	if _, ok := h.authorize(c, c.Param("id")); !ok {
		return
	}
	body, ok := bindDocument(c, "OrderHandler.Update")
	if !ok {
		return
	}

	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if _, ok := h.authorize(c, c.Param("id")); !ok {
		return
	}

	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// authorize loads the order and lets through its owner or an admin.
func (h *OrderHandler) authorize(c *gin.Context, id string) (models.Document, bool) {
	email, ok := requireEmail(c)
	if !ok {
		return nil, false
	}
	ctx := c.Request.Context()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if models.StringField(order, models.FieldAddedBy) == email {
		return order, true
	}

	admin, err := h.users.IsAdmin(ctx, email)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !admin {
		writeError(c, utils.E(utils.CodeForbidden, "OrderHandler.authorize", "Forbidden Access", nil))
		return nil, false
	}
	return order, true
}
