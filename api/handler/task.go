package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/api/transport"
	"github.com/fastygo/progress/pkg/httpcontext"
	taskUC "github.com/fastygo/progress/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, username)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewList(tasks, len(tasks)))
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.TaskRequest
	if err := decode(ctx, &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, username, taskUC.Input{
		Name:     req.Name,
		Category: req.Category,
		Priority: req.Priority,
		Status:   req.Status,
	})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task status
// @Tags tasks
// @Router /api/v1/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondInvalid(ctx, "invalid task id")
		return
	}

	var req transport.StatusRequest
	if err := decode(ctx, &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateStatus(stdCtx, username, id, req.Status); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"id": id, "status": req.Status})
}
