package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/services"
	"github.com/yoockh/bikeparts/internal/utils"
)

const maxImageBytes = 5 << 20

type ProductHandler struct {
	svc services.ProductService
}

func NewProductHandler(svc services.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := requireEmail(c)
	if !ok {
		return
	}
	body, ok := bindDocument(c, "ProductHandler.Create")
	if !ok {
		return
	}

	res, err := h.svc.Create(c.Request.Context(), actor, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), limitTo(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := requireEmail(c)
	if !ok {
		return
	}
	body, ok := bindDocument(c, "ProductHandler.Update")
	if !ok {
		return
	}

	res, err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	actor, ok := requireEmail(c)
	if !ok {
		return
	}

	res, err := h.svc.Delete(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UploadImage accepts a multipart "image" field of at most 5 MiB.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	const op = "ProductHandler.UploadImage"

	actor, ok := requireEmail(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	fh, err := c.FormFile("image")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "image file is required", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read image", err))
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.svc.UploadImage(c.Request.Context(), actor, c.Param("id"), fh.Filename, contentType, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imageUrl": url})
}
