package order

import (
	"net/http"
	"strconv"

	"brewline/internal/apperr"
	"brewline/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type itemRequest struct {
	MenuItemID      int64             `json:"menu_item_id" binding:"required"`
	Quantity        *int              `json:"quantity" binding:"omitempty,min=1,max=1000"`
	SelectedOptions map[string]string `json:"selected_options"`
	Notes           *string           `json:"notes" binding:"omitempty,max=500"`
}

type createRequest struct {
	Name  string        `json:"name" binding:"required,max=120"`
	Items []itemRequest `json:"items" binding:"dive"`
}

func (r createRequest) items() []ItemRequest {
	out := make([]ItemRequest, 0, len(r.Items))
	for _, it := range r.Items {
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		out = append(out, ItemRequest{
			MenuItemID:      it.MenuItemID,
			Quantity:        qty,
			SelectedOptions: it.SelectedOptions,
			Notes:           it.Notes,
		})
	}
	return out
}

// POST /orders
func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.service.Create(c.Request.Context(), user.ID, req.Name, req.items())
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GET /orders
func (h *Handler) List(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := h.service.List(c.Request.Context(), Viewer{UserID: user.ID, IsMaster: user.IsMaster})
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// POST /orders/:id/served
func (h *Handler) MarkServed(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	if err := h.service.MarkServed(c.Request.Context(), id); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /orders
func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
