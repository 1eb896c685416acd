package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/api/transport"
	"github.com/fastygo/progress/pkg/httpcontext"
	authUC "github.com/fastygo/progress/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc         *authUC.UseCase
	defaultTTL time.Duration
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		defaultTTL:  ttl,
	}
}

// @Summary Create an account
// @Tags auth
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) SignUp(ctx *fasthttp.RequestCtx) {
	var req transport.CredentialsRequest
	if err := decode(ctx, &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.SignUp(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Issue a new session
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.CredentialsRequest
	if err := decode(ctx, &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	res, err := h.uc.Login(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, res)
}

// @Summary Refresh the current session
// @Tags auth
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	sessionID := httpcontext.SessionID(ctx)
	if h.username(ctx) == "" {
		return
	}

	var req transport.RefreshRequest
	if len(ctx.PostBody()) > 0 {
		if err := decode(ctx, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	res, err := h.uc.RefreshSession(stdCtx, sessionID, h.ttlFromRequest(req.TTL))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, res)
}

// @Summary Revoke the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	if h.username(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx, httpcontext.SessionID(ctx)); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"logged_out": true})
}

// ttlFromRequest never grants more than the configured session lifetime.
func (h *AuthHandler) ttlFromRequest(ttlSeconds int) time.Duration {
	if ttlSeconds <= 0 || int64(ttlSeconds) > int64(h.defaultTTL/time.Second) {
		return h.defaultTTL
	}
	return time.Duration(ttlSeconds) * time.Second
}
