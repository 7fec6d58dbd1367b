package dto

// ── 认证模块响应 ──

// TokenResponse Token 响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // 秒
}

// ── 文档模块响应 ──

// ImportResponse 导入结果统计
type ImportResponse struct {
	Members  int `json:"members"`
	Slots    int `json:"slots"`
	Projects int `json:"projects"`
}
