package dto

// ── 成员模块 DTO ──

// CreateMemberRequest 创建成员请求
type CreateMemberRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"  binding:"max=100"`
	Level string `json:"level"` // 为空时为 Unspecified
}

// UpdateMemberRequest 编辑成员请求
type UpdateMemberRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"  binding:"max=100"`
	Level string `json:"level"`
}

// MemberResponse 成员信息响应
type MemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Level     string `json:"level"`
	SlotCount int    `json:"slot_count"`
}

// DeleteMemberResponse 删除成员结果（含级联删除的时间段数）
type DeleteMemberResponse struct {
	Deleted      bool `json:"deleted"`
	RemovedSlots int  `json:"removed_slots"`
}
