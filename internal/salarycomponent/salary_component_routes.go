package salarycomponent

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authz middleware.RBACService,
) {
	components := r.Group("/salary-components")
	components.Use(middleware.AuthMiddleware())
	{
		components.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "salary_component", "read"),
			handler.GetAll,
		)
		components.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "salary_component", "read"),
			handler.GetByID,
		)
		components.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "salary_component", "write"),
			handler.Create,
		)
		components.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "salary_component", "write"),
			handler.Update,
		)
		components.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "salary_component", "write"),
			handler.Deactivate,
		)
	}
}
