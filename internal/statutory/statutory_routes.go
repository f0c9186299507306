package statutory

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authz middleware.RBACService,
) {
	settings := r.Group("/payroll-settings")
	settings.Use(middleware.AuthMiddleware())
	{
		settings.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "payroll_settings", "read"),
			handler.GetSettings,
		)
		settings.PUT("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "payroll_settings", "write"),
			handler.UpsertSettings,
		)
	}

	rules := r.Group("/professional-tax-rules")
	rules.Use(middleware.AuthMiddleware())
	{
		rules.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "pt_rule", "read"),
			handler.ListRules,
		)
		rules.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "pt_rule", "write"),
			handler.CreateRule,
		)
		rules.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "pt_rule", "write"),
			handler.DeleteRule,
		)
	}
}
