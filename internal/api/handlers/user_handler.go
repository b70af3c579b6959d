package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/models"
	"github.com/yoockh/bikeparts/internal/services"
	"github.com/yoockh/bikeparts/internal/utils"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Login upserts the user named in the path and returns a fresh token.
func (h *UserHandler) Login(c *gin.Context) {
	body, ok := bindDocument(c, "UserHandler.Login")
	if !ok {
		return
	}

	out, err := h.svc.Login(c.Request.Context(), c.Param("email"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Update(c *gin.Context) {
	body, ok := bindDocument(c, "UserHandler.Update")
	if !ok {
		return
	}

	res, err := h.svc.UpdateProfile(c.Request.Context(), c.Param("email"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *UserHandler) SetRole(c *gin.Context) {
	actor, ok := requireEmail(c)
	if !ok {
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.SetRole", "role is required", err))
		return
	}

	res, err := h.svc.SetRole(c.Request.Context(), actor, c.Param("email"), models.Role(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) IsAdmin(c *gin.Context) {
	admin, err := h.svc.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// List returns every user to admins and only the caller's own record to
// everyone else.
func (h *UserHandler) List(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	admin, err := h.svc.IsAdmin(ctx, email)
	if err != nil {
		writeError(c, err)
		return
	}
	if admin {
		users, err := h.svc.List(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
		return
	}

	users := []models.Document{}
	if me, err := h.svc.Get(ctx, email); err == nil {
		users = append(users, me)
	} else if !utils.IsCode(err, utils.CodeNotFound) {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
