package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/api/transport"
	"github.com/fastygo/progress/internal/infrastructure/monitor"
	"github.com/fastygo/progress/pkg/httpcontext"
)

// StatusSource reports the last observed dependency status.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
	drivers map[string]string
}

// NewHealthHandler reports on mon; drivers names the configured backends, e.g. {"storage": "sqlite"}.
func NewHealthHandler(mon StatusSource, drivers map[string]string, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
		drivers:     drivers,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp":  time.Now().UTC(),
		"last_check": status.LastCheck,
		"services": map[string]interface{}{
			"storage":  map[string]interface{}{"online": status.Storage, "driver": h.drivers["storage"]},
			"sessions": map[string]interface{}{"online": status.Sessions, "driver": h.drivers["sessions"]},
		},
	}

	if status.Healthy() {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
