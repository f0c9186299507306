package attendance

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authz middleware.RBACService,
) {
	sheets := r.Group("/attendance-sheets")
	sheets.Use(middleware.AuthMiddleware())
	{
		sheets.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(authz, "attendance", "read"),
			handler.GetSheet,
		)
		sheets.GET("/template",
			middleware.RateLimitByUser(1, 2),
			middleware.RBACAuthorize(authz, "attendance", "read"),
			handler.DownloadTemplate,
		)
		sheets.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "attendance", "write"),
			handler.Import,
		)
		sheets.POST("/upload",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "attendance", "write"),
			handler.Upload,
		)
	}
}
