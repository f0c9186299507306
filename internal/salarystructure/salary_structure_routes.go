package salarystructure

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authz middleware.RBACService,
) {
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "salary_structure", "read"),
			handler.GetAll,
		)
		structures.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "salary_structure", "read"),
			handler.GetByID,
		)
		structures.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "salary_structure", "write"),
			handler.Create,
		)
		structures.PUT("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "salary_structure", "write"),
			handler.Update,
		)
		structures.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(authz, "salary_structure", "write"),
			handler.Delete,
		)
	}
}
