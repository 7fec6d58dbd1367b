package dto

// CreateProjectRequest 登记项目请求
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// ProjectResponse 项目信息响应
type ProjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SlotCount int    `json:"slot_count"`
}
