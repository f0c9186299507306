package app

import (
	"net/http"

	"go-hrms/internal/config"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with the global middleware chain.
func NewRouter(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(20, 40),
	)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

// BuildApp connects the infrastructure and registers every module on router.
// The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	infra, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := registerModules(router, infra, cfg, logger); err != nil {
		infra.Close()
		return nil, err
	}
	logger.Info("modules registered")

	return infra.Close, nil
}
