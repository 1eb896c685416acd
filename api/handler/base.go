package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/api/transport"
	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/pkg/httpcontext"
	appLogger "github.com/fastygo/progress/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), message, nil))
}

// respondError maps domain errors to HTTP statuses. Internal failures are
// logged in full and reported with a generic message.
func (h baseHandler) respondError(stdCtx context.Context, ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		appLogger.WithRequestID(stdCtx, h.logger).Error("request failed",
			zap.String("path", string(ctx.Path())),
			zap.Error(err))
		message = "internal error"
	}
	h.respondJSON(ctx, status, transport.NewError(code, message, nil))
}

// username returns the caller set by the auth middleware, answering 401 when absent.
func (h baseHandler) username(ctx *fasthttp.RequestCtx) string {
	username := httpcontext.Username(ctx)
	if username == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing session", nil))
	}
	return username
}

func decode(ctx *fasthttp.RequestCtx, dst interface{}) error {
	if len(ctx.PostBody()) == 0 {
		return domain.ErrInvalidPayload
	}
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		return domain.ErrInvalidPayload
	}
	return nil
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, string(domain.ErrCodeConflict)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
