package menu

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"brewline/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMenuTestRouter(storage Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	service := NewService(NewInMemoryRepository(), storage, logging.Discard())
	handler := NewHandler(service)

	r.GET("/menu", handler.List)
	r.POST("/menu", handler.Create)
	r.PUT("/menu/:id", handler.Update)
	r.DELETE("/menu/:id", handler.Delete)
	r.DELETE("/menu", handler.Clear)
	r.POST("/menu/:id/image", handler.UploadImage)

	return r
}

func send(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
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

var latteJSON = map[string]any{
	"name":        "Caramel Latte",
	"price_cents": 495,
	"category":    "Lattes",
	"options": []map[string]any{
		{
			"name":     "Size",
			"required": true,
			"choices": []map[string]any{
				{"label": "Tall", "price_cents": 0},
				{"label": "Grande", "price_cents": 50},
			},
		},
	},
}

func TestMenuCRUD(t *testing.T) {
	r := setupMenuTestRouter(nil)

	w := send(r, http.MethodPost, "/menu", latteJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	require.Len(t, created.Options, 1)
	assert.Equal(t, "Grande", created.Options[0].Choices[1].Label)

	w = send(r, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	update := map[string]any{"name": "Caramel Latte", "price_cents": 515, "category": "Lattes"}
	w = send(r, http.MethodPut, "/menu/1", update)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price_cents":515`)

	w = send(r, http.MethodPut, "/menu/42", update)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(r, http.MethodDelete, "/menu/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = send(r, http.MethodDelete, "/menu/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuCreate_BadPayloads(t *testing.T) {
	r := setupMenuTestRouter(nil)

	w := send(r, http.MethodPost, "/menu", map[string]any{"name": "No price", "category": "Lattes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	dup := map[string]any{
		"name": "Latte", "price_cents": 400, "category": "Lattes",
		"options": []map[string]any{
			{"name": "Size", "choices": []map[string]any{{"label": "Tall"}}},
			{"name": "Size", "choices": []map[string]any{{"label": "Venti"}}},
		},
	}
	w = send(r, http.MethodPost, "/menu", dup)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "defined twice")

	huge := map[string]any{"name": "Latte", "price_cents": int64(math.MaxInt32) + 1, "category": "Lattes"}
	w = send(r, http.MethodPost, "/menu", huge)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at most 2147483647")

	w = send(r, http.MethodDelete, "/menu/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuClear(t *testing.T) {
	r := setupMenuTestRouter(nil)

	send(r, http.MethodPost, "/menu", latteJSON)
	send(r, http.MethodPost, "/menu", latteJSON)

	w := send(r, http.MethodDelete, "/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodGet, "/menu", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestMenuUploadImage(t *testing.T) {
	storage := &fakeStorage{}
	r := setupMenuTestRouter(storage)
	send(r, http.MethodPost, "/menu", latteJSON)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", "latte.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/menu/1/image", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "jpeg-bytes", storage.body)
	assert.Contains(t, w.Body.String(), "https://cdn.example.com/menu/1/")
}

func TestMenuUploadImage_MissingFile(t *testing.T) {
	r := setupMenuTestRouter(&fakeStorage{})

	req := httptest.NewRequest(http.MethodPost, "/menu/1/image", nil)
	req.Header.Set("Content-Type", "multipart/form-data")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
