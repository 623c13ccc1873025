package health

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/common"
)

// Handler serves liveness and readiness probes.
type Handler struct {
	store *catalog.Store
	redis *redis.Client
}

// HandlerConfig configures the Handler dependencies. Redis is optional;
// when nil the readiness probe skips it.
type HandlerConfig struct {
	Store *catalog.Store
	Redis *redis.Client
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{store: cfg.Store, redis: cfg.Redis}
}

// Live reports process liveness.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the service can answer catalog traffic. The catalog
// must be loaded; redis, when configured, must answer a ping.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"catalog": "ok"}
	status := http.StatusOK

	if h.store == nil || h.store.Len() == 0 {
		checks["catalog"] = "empty"
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		checks["redis"] = "ok"
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	body := map[string]any{"status": "ok", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	common.JSON(w, status, body)
}
