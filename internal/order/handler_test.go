package order

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brewline/internal/auth"
	"brewline/internal/logging"
	"brewline/internal/menu"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderTestRouter(t *testing.T) (*gin.Engine, *auth.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := menu.NewInMemoryRepository()
	item := latte()
	require.NoError(t, catalog.Create(context.Background(), &item))

	handler := NewHandler(NewService(NewInMemoryRepository(), catalog, nil, logging.Discard()))

	current := &auth.User{ID: 5, Email: "guest@example.com"}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.SetCurrentUser(c, current)
		c.Next()
	})
	r.POST("/orders", handler.Create)
	r.GET("/orders", handler.List)
	r.POST("/orders/:id/served", handler.MarkServed)
	r.DELETE("/orders", handler.Clear)

	return r, current
}

func doJSON(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderHandler(t *testing.T) {
	r, _ := setupOrderTestRouter(t)

	w := doJSON(r, http.MethodPost, "/orders", map[string]any{
		"name": "Team coffee",
		"items": []map[string]any{
			{"menu_item_id": 1, "quantity": 2, "selected_options": map[string]string{"Size": "Grande", "Milk": "Oat"}, "notes": " no foam "},
			{"menu_item_id": 1, "selected_options": map[string]string{"Size": "Huge"}},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(5), got.UserID)
	assert.Equal(t, "Team coffee", got.Name)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(1230), got.Items[0].LineTotalCents)
	require.NotNil(t, got.Items[0].Notes)
	assert.Equal(t, "no foam", *got.Items[0].Notes)
	assert.Equal(t, 1, got.Items[1].Quantity, "quantity defaults to 1")
	assert.Equal(t, int64(495), got.Items[1].LineTotalCents)
	assert.Equal(t, int64(1725), got.TotalCents)
	assert.False(t, got.Served)
}

func TestCreateOrderHandler_Rejections(t *testing.T) {
	r, _ := setupOrderTestRouter(t)

	tests := []struct {
		name    string
		payload map[string]any
		status  int
	}{
		{"empty items", map[string]any{"name": "x", "items": []any{}}, http.StatusBadRequest},
		{"missing name", map[string]any{"items": []map[string]any{{"menu_item_id": 1}}}, http.StatusBadRequest},
		{"blank name", map[string]any{"name": "   ", "items": []map[string]any{{"menu_item_id": 1}}}, http.StatusBadRequest},
		{"zero quantity", map[string]any{"name": "x", "items": []map[string]any{{"menu_item_id": 1, "quantity": 0}}}, http.StatusBadRequest},
		{"quantity over limit", map[string]any{"name": "x", "items": []map[string]any{{"menu_item_id": 1, "quantity": 1001}}}, http.StatusBadRequest},
		{"overflowing quantity", map[string]any{"name": "x", "items": []map[string]any{{"menu_item_id": 1, "quantity": math.MaxInt64 / 400}}}, http.StatusBadRequest},
		{"long notes", map[string]any{"name": "x", "items": []map[string]any{{"menu_item_id": 1, "notes": strings.Repeat("n", 501)}}}, http.StatusBadRequest},
		{"unknown item", map[string]any{"name": "x", "items": []map[string]any{{"menu_item_id": 1}, {"menu_item_id": 77}}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/orders", tt.payload)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w := doJSON(r, http.MethodGet, "/orders", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListOrdersHandler_ScopedToViewer(t *testing.T) {
	r, current := setupOrderTestRouter(t)

	order := map[string]any{"name": "mine", "items": []map[string]any{{"menu_item_id": 1}}}
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/orders", order).Code)

	current.ID = 6
	order["name"] = "theirs"
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/orders", order).Code)

	var got []Order
	require.NoError(t, json.Unmarshal(doJSON(r, http.MethodGet, "/orders", nil).Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "theirs", got[0].Name)

	current.IsMaster = true
	require.NoError(t, json.Unmarshal(doJSON(r, http.MethodGet, "/orders", nil).Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestMarkServedHandler(t *testing.T) {
	r, _ := setupOrderTestRouter(t)

	order := map[string]any{"name": "mine", "items": []map[string]any{{"menu_item_id": 1}}}
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/orders", order).Code)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/orders/1/served", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/orders/1/served", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodPost, "/orders/2/served", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPost, "/orders/abc/served", nil).Code)

	var got []Order
	require.NoError(t, json.Unmarshal(doJSON(r, http.MethodGet, "/orders", nil).Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.True(t, got[0].Served)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, "/orders", nil).Code)
	assert.JSONEq(t, `[]`, doJSON(r, http.MethodGet, "/orders", nil).Body.String())
}
