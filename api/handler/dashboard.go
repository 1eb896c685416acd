package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/pkg/httpcontext"
	"github.com/fastygo/progress/usecase/dashboard"
)

type DashboardHandler struct {
	baseHandler
	uc *dashboard.UseCase
}

func NewDashboardHandler(uc *dashboard.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Productivity metrics
// @Tags dashboard
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Get(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	d, err := h.uc.Dashboard(stdCtx, username)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, d)
}
