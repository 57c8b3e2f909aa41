package menu

import (
	"net/http"
	"strconv"

	"brewline/internal/apperr"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type itemRequest struct {
	Name        string        `json:"name" binding:"required"`
	Description *string       `json:"description"`
	PriceCents  *int64        `json:"price_cents" binding:"required"`
	Category    string        `json:"category" binding:"required"`
	ImageURL    *string       `json:"image_url"`
	Options     []OptionGroup `json:"options"`
}

func (r itemRequest) input() ItemInput {
	return ItemInput{
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  *r.PriceCents,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Options:     r.Options,
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return 0, false
	}
	return id, true
}

// GET /menu
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /menu
func (h *Handler) Create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// PUT /menu/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req.input())
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DELETE /menu/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /menu
func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /menu/:id/image (multipart field "image")
func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	item, err := h.service.UploadImage(c.Request.Context(), id, file, header.Filename)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
