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

// ShiftHandler 班次网格 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// GetGrid 获取期间网格（合并视图）
// GET /api/v1/periods/:year/:month/shifts
func (h *ShiftHandler) GetGrid(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}

	grid, err := h.shiftSvc.GetGrid(c.Request.Context(), key)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, grid)
}

// SetStatus 设置单元格出勤状态
// PUT /api/v1/periods/:year/:month/shifts/status
func (h *ShiftHandler) SetStatus(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}
	var req dto.SetShiftStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.shiftSvc.SetStatus(c.Request.Context(), key, &req); err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetRequestText 设置希望申告备注
// PUT /api/v1/periods/:year/:month/requests/text
func (h *ShiftHandler) SetRequestText(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}
	var req dto.SetRequestTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.shiftSvc.SetRequestText(c.Request.Context(), key, &req); err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetRequestCount 设置希望稼働日数
// PUT /api/v1/periods/:year/:month/requests/count
func (h *ShiftHandler) SetRequestCount(c *gin.Context) {
	key, ok := bindPeriod(c)
	if !ok {
		return
	}
	var req dto.SetRequestCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.shiftSvc.SetRequestCount(c.Request.Context(), key, &req); err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleShiftError 统一处理班次模块业务错误
func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPeriodInvalid):
		response.BadRequest(c, 21001, "期间参数非法")
	case errors.Is(err, service.ErrDateOutsidePeriod):
		response.BadRequest(c, 21002, "日期不在该期间内")
	case errors.Is(err, service.ErrUnknownRequestField):
		response.BadRequest(c, 21003, "未知的希望申告字段")
	case errors.Is(err, store.ErrNoActiveSession):
		response.ErrorWithKind(c, http.StatusConflict, 21004, "该期间已提交，请先开启编辑会话", store.Kind(err))
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_handler.go
