package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/promolab-cl/backend-promolab/internal/common"
)

// Handler exposes the checkout endpoint.
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

// Checkout handles POST /api/v1/checkout.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		common.WriteError(w, &common.AppError{
			Code: "BAD_REQUEST", Message: "invalid request body", HTTPStatus: http.StatusBadRequest, Err: err,
		})
		return
	}
	conf, err := h.service.Checkout(r.Context(), form)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": conf})
}
