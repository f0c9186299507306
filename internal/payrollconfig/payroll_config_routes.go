package payrollconfig

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authz middleware.RBACService,
) {
	configs := r.Group("/payroll-configs")
	configs.Use(middleware.AuthMiddleware())
	{
		configs.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "payroll_config", "read"),
			handler.List,
		)
		configs.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "payroll_config", "read"),
			handler.GetByID,
		)
		configs.GET("/:id/breakdown",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(authz, "payroll_config", "read"),
			handler.PreviewBreakdown,
		)
		configs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "payroll_config", "write"),
			handler.Create,
		)
		configs.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "payroll_config", "write"),
			handler.Update,
		)
		configs.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "payroll_config", "write"),
			handler.Deactivate,
		)
	}
}
