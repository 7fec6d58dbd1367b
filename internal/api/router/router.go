package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slot-planner/config"
	"slot-planner/internal/api/handler"
	"slot-planner/internal/api/middleware"
	"slot-planner/pkg/jwt"
	"slot-planner/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎；rdb 为 nil 时跳过黑名单，限流退回进程内实现
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	var (
		blacklist middleware.BlacklistChecker
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	} else {
		limiter = middleware.NewLocalLimiter()
	}
	importLimit := middleware.RateLimit(limiter, cfg.RateLimit.ImportLimit, cfg.RateLimit.ImportWindow)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", importLimit, h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 成员模块
			members := authorized.Group("/members")
			{
				members.GET("", h.Member.ListMembers)
				members.POST("", h.Member.CreateMember)
				members.GET("/:id", h.Member.GetMember)
				members.PUT("/:id", h.Member.UpdateMember)
				members.DELETE("/:id", h.Member.DeleteMember)

				members.GET("/:id/slots", h.Slot.ListMemberSlots)
				members.GET("/:id/gaps", h.Planner.Gaps)
				members.GET("/:id/week", h.Planner.WeekView)
				members.GET("/:id/week/xlsx", h.Export.ExportWeek)
			}

			// 时间段模块
			slots := authorized.Group("/slots")
			{
				slots.POST("", h.Slot.CreateTimeSlot)
				slots.GET("/:id", h.Slot.GetTimeSlot)
				slots.PUT("/:id", h.Slot.UpdateTimeSlot)
				slots.DELETE("/:id", h.Slot.DeleteTimeSlot)
			}

			// 拖拽模块
			drag := authorized.Group("/drag")
			{
				drag.POST("/proposal", h.Planner.ProposeFromDrag)
				drag.POST("/commit", h.Planner.CommitProposal)
			}

			// 项目目录
			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.ListProjects)
				projects.POST("", h.Project.CreateProject)
				projects.DELETE("/:id", h.Project.DeleteProject)
			}

			// 数据文档
			authorized.GET("/document", h.Document.ExportDocument)
			authorized.PUT("/document", importLimit, h.Document.ImportDocument)
		}
	}

	return r
}
