package cart

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/promolab-cl/backend-promolab/internal/common"
)

// Handler exposes cart endpoints.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Create handles POST /api/v1/carts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	view, err := h.service.Create(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": view})
}

// Get handles GET /api/v1/carts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	id, err := cartIDParam(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// AddItem handles POST /api/v1/carts/{id}/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	id, err := cartIDParam(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var body addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		common.WriteError(w, &common.AppError{
			Code: "BAD_REQUEST", Message: "invalid request body", HTTPStatus: http.StatusBadRequest, Err: err,
		})
		return
	}
	if body.ProductID < 1 {
		common.WriteError(w, &common.AppError{
			Code: "BAD_REQUEST", Message: "productId is required", HTTPStatus: http.StatusBadRequest,
		})
		return
	}
	view, err := h.service.AddItem(r.Context(), id, body.ProductID, body.Quantity)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// RemoveItem handles DELETE /api/v1/carts/{id}/items/{productId}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	id, err := cartIDParam(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	productID, err := productIDParam(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	view, err := h.service.RemoveItem(r.Context(), id, productID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Clear handles DELETE /api/v1/carts/{id}/items.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	id, err := cartIDParam(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	view, err := h.service.Clear(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

func cartIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", &common.AppError{
			Code: "BAD_REQUEST", Message: "invalid cart id", HTTPStatus: http.StatusBadRequest,
		}
	}
	return id, nil
}

func productIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &common.AppError{
			Code: "BAD_REQUEST", Message: "invalid product id", HTTPStatus: http.StatusBadRequest, Err: err,
		}
	}
	return id, nil
}
