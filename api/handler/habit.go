package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/api/transport"
	"github.com/fastygo/progress/pkg/httpcontext"
	habitUC "github.com/fastygo/progress/usecase/habit"
)

type HabitHandler struct {
	baseHandler
	uc *habitUC.UseCase
}

func NewHabitHandler(uc *habitUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List habits with today's state
// @Tags habits
// @Router /api/v1/habits [get]
func (h *HabitHandler) GetHabits(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habits, err := h.uc.ListHabits(stdCtx, username)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewList(habits, len(habits)))
}

// @Summary Create habit
// @Tags habits
// @Router /api/v1/habits [post]
func (h *HabitHandler) CreateHabit(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.HabitRequest
	if err := decode(ctx, &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateHabit(stdCtx, username, req.Title)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Mark a habit done for today
// @Tags habits
// @Router /api/v1/habits/{id}/done [put]
func (h *HabitHandler) MarkDone(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondInvalid(ctx, "invalid habit id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	st, err := h.uc.MarkDone(stdCtx, username, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, st)
}
