package payroll

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authz middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	generate := []gin.HandlerFunc{
		middleware.RateLimitByUser(0.1, 1),
		middleware.RBACAuthorize(authz, "payroll", "write"),
	}
	if redisClient != nil {
		generate = append(generate, middleware.Idempotency(redisClient))
	}
	generate = append(generate, handler.Generate)

	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.POST("/generate", generate...)
		payroll.GET("/records",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "payroll", "read"),
			handler.List,
		)
		payroll.GET("/records/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "payroll", "read"),
			handler.GetByID,
		)
		payroll.GET("/records/:id/breakdown",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "payroll", "read"),
			handler.GetBreakdown,
		)
		payroll.GET("/records/:id/payslip",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(authz, "payroll", "read"),
			handler.DownloadPayslip,
		)
		payroll.GET("/register",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "payroll", "read"),
			handler.ExportRegister,
		)
		payroll.GET("/adjustments",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "payroll", "read"),
			handler.ListAdjustments,
		)
		payroll.POST("/adjustments",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "payroll", "write"),
			handler.AddAdjustment,
		)
		payroll.DELETE("/adjustments/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "payroll", "write"),
			handler.DeleteAdjustment,
		)
	}
}
