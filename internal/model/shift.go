package model

// ── 班次出勤状态 ──

const (
	ShiftStatusAttend    = "attend"    // ○ 可出勤
	ShiftStatusDecline   = "decline"   // × 不可出勤
	ShiftStatusUndecided = "undecided" // △ 未定
)

// ValidShiftStatus 校验出勤状态合法性
func ValidShiftStatus(s string) bool {
	switch s {
	case ShiftStatusAttend, ShiftStatusDecline, ShiftStatusUndecided:
		return true
	}
	return false
}

// ShiftRecord 班次记录表 — 对应 shift_records
// 每期间内 (staff_id, shift_date) 唯一；无记录表示"尚未录入"，不存在默认状态
type ShiftRecord struct {
	ShiftRecordID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_record_id"`
	Year          int     `gorm:"type:smallint;not null;uniqueIndex:idx_shift_period_staff_date" json:"year"`
	Month         int     `gorm:"type:smallint;not null;uniqueIndex:idx_shift_period_staff_date" json:"month"`
	StaffID       string  `gorm:"type:uuid;not null;uniqueIndex:idx_shift_period_staff_date"     json:"staff_id"`
	ShiftDate     string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_shift_period_staff_date" json:"shift_date"` // YYYY-MM-DD
	Status        string  `gorm:"type:varchar(20);not null"                      json:"status"` // attend | decline | undecided
	Location      *string `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	Rate          *int    `gorm:"type:integer"                                   json:"rate,omitempty"`
	Comment       string  `gorm:"type:varchar(500)"                              json:"comment,omitempty"`
	BaseModel

	// 关联
	Staff *Staff `gorm:"foreignKey:StaffID;references:StaffID" json:"staff,omitempty"`
}

// TableName 指定表名
func (ShiftRecord) TableName() string { return "shift_records" }

// ── 希望申告默认值 ──

const (
	DefaultTotalRequestCount   = 20 // 月希望稼働日数默认值
	DefaultWeekendRequestCount = 5  // 周末希望稼働日数默认值
)

// StaffRequest 希望申告记录表 — 对应 staff_requests
// 每期间内 staff_id 唯一；聚合希望稼働日数与自由备注
type StaffRequest struct {
	StaffRequestID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_request_id"`
	Year                int    `gorm:"type:smallint;not null;uniqueIndex:idx_request_period_staff" json:"year"`
	Month               int    `gorm:"type:smallint;not null;uniqueIndex:idx_request_period_staff" json:"month"`
	StaffID             string `gorm:"type:uuid;not null;uniqueIndex:idx_request_period_staff"     json:"staff_id"`
	TotalRequestCount   int    `gorm:"not null;default:20"                            json:"total_request_count"`
	WeekendRequestCount int    `gorm:"not null;default:5"                             json:"weekend_request_count"`
	RequestText         string `gorm:"type:varchar(500)"                              json:"request_text,omitempty"`
	Company             string `gorm:"type:varchar(200)"                              json:"company,omitempty"`
	BaseModel

	// 关联
	Staff *Staff `gorm:"foreignKey:StaffID;references:StaffID" json:"staff,omitempty"`
}

// TableName 指定表名
func (StaffRequest) TableName() string { return "staff_requests" }

// [自证通过] internal/model/shift.go
