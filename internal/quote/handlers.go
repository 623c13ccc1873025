package quote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/common"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
)

// Handler exposes quote endpoints.
type Handler struct {
	service  *Service
	renderer *PDFRenderer
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service  *Service
	Renderer *PDFRenderer
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service, renderer: cfg.Renderer}
}

// Quote handles POST /api/v1/products/{id}/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	id, err := catalog.ProductIDParam(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input Input
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		common.WriteError(w, invalidBody("invalid request body", err))
		return
	}
	if input.Quantity == nil && input.TierIndex == nil {
		common.WriteError(w, invalidBody("quantity or tierIndex is required", nil))
		return
	}

	view, err := h.service.Quote(r.Context(), id, input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// QuotePDF handles GET /api/v1/products/{id}/quote/pdf?qty=N.
func (h *Handler) QuotePDF(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || h.renderer == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	id, err := catalog.ProductIDParam(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	// Garbage quantities quote as 1 rather than failing the export.
	qty := pricing.ClampQuantity(common.AtoiDefault(strings.TrimSpace(r.URL.Query().Get("qty")), 1))

	view, product, company, err := h.service.Document(r.Context(), id, qty)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfFilename(product)))
	w.WriteHeader(http.StatusOK)
	if err := h.renderer.Render(w, view, product, company); err != nil {
		// Headers are already gone; nothing to do but log upstream.
		return
	}
}

func pdfFilename(p catalog.Product) string {
	slug := strings.ToLower(strings.TrimSpace(p.SKU))
	if slug == "" {
		slug = strconv.FormatInt(p.ID, 10)
	}
	return "cotizacion-" + slug + ".pdf"
}
