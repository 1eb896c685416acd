package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/pkg/httpcontext"
	"github.com/fastygo/progress/usecase/export"
)

type ExportHandler struct {
	baseHandler
	uc *export.UseCase
}

func NewExportHandler(uc *export.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Download tasks as CSV
// @Tags export
// @Router /api/v1/export/tasks.csv [get]
func (h *ExportHandler) Tasks(ctx *fasthttp.RequestCtx) {
	h.serveCSV(ctx, export.TasksFile, h.uc.Tasks)
}

// @Summary Download daily logs as CSV
// @Tags export
// @Router /api/v1/export/logs.csv [get]
func (h *ExportHandler) Logs(ctx *fasthttp.RequestCtx) {
	h.serveCSV(ctx, export.LogsFile, h.uc.Logs)
}

func (h *ExportHandler) serveCSV(ctx *fasthttp.RequestCtx, filename string, write func(context.Context, string, io.Writer) error) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// Buffered so a failure midway still yields a JSON error instead of a truncated file.
	var buf bytes.Buffer
	if err := write(stdCtx, username, &buf); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	ctx.Response.Header.SetContentType("text/csv; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(buf.Bytes())
}
