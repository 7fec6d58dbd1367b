package dto

// ── 时间段模块 DTO ──

// CreateSlotRequest 创建时间段请求
// 项目、时间的业务校验由 Service 完成，以便区分校验错误与请求体格式错误
type CreateSlotRequest struct {
	MemberID string `json:"member_id" binding:"required"`
	Project  string `json:"project"`
	Day      string `json:"day"`
	Start    string `json:"start"` // "09:30"
	End      string `json:"end"`   // "11:00"
	Month    string `json:"month"` // 为空时取当前月份桶
}

// UpdateSlotRequest 编辑时间段请求（成员归属不可修改）
type UpdateSlotRequest struct {
	Project string `json:"project"`
	Day     string `json:"day"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Month   string `json:"month"` // 为空时保留原月份
}

// SlotListRequest 时间段列表查询参数
type SlotListRequest struct {
	Day   string `form:"day"`
	Month string `form:"month"`
}

// SlotResponse 时间段信息响应
type SlotResponse struct {
	ID       string `json:"id"`
	MemberID string `json:"member_id"`
	Project  string `json:"project"`
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Month    string `json:"month"`
	Minutes  int    `json:"minutes"`
	Color    string `json:"color"` // 按 project+day 稳定生成
}

// DeleteResponse 删除结果；目标不存在时 Deleted=false
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
