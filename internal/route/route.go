package route

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"terminal-terrace/editorial/config"
	"terminal-terrace/editorial/internal/article"
	"terminal-terrace/editorial/internal/middleware"
	"terminal-terrace/editorial/internal/workflow"
)

func initRoute(r *gin.Engine, cfg *config.AppConfig, svc *workflow.Service) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api/v1")
	article.SetupArticleRoutes(api, svc, cfg.JWT.Secret)
}

func SetupRouter(cfg *config.AppConfig, svc *workflow.Service, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	initRoute(r, cfg, svc)

	return r
}
