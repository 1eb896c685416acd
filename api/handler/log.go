package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/api/transport"
	"github.com/fastygo/progress/pkg/httpcontext"
	"github.com/fastygo/progress/usecase/activity"
)

type LogHandler struct {
	baseHandler
	uc *activity.UseCase
}

func NewLogHandler(uc *activity.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List daily logs
// @Tags logs
// @Router /api/v1/logs [get]
func (h *LogHandler) GetLogs(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	logs, err := h.uc.ListLogs(stdCtx, username)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewList(logs, len(logs)))
}

// @Summary Record a daily log
// @Tags logs
// @Router /api/v1/logs [post]
func (h *LogHandler) CreateLog(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.LogRequest
	if err := decode(ctx, &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entry, err := h.uc.CreateLog(stdCtx, username, activity.Input{
		Hours: req.Hours,
		Notes: req.Notes,
		Mood:  req.Mood,
		Date:  req.Date,
	})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, entry)
}
