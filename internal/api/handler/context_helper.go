package handler

import (
	"github.com/gin-gonic/gin"

	"slot-planner/pkg/jwt"
	"slot-planner/pkg/response"
)

// 由 JWTAuth 中间件注入的上下文键
const (
	CtxClaims   = "claims"
	CtxUsername = "username"
)

// MustGetClaims 从 Gin 上下文中安全提取 JWT 声明。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(CtxClaims)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return nil, false
	}
	return claims, true
}
