package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/easyops/context-academy-go/pkg/otel"
)

// RouterConfig 路由配置
type RouterConfig struct {
	Handler      *Handler
	AllowOrigins []string
	// ServiceName 用于 otelgin 的服务名，为空时不启用 HTTP 追踪
	ServiceName string
	Metrics     otel.Metrics
	Logger      otel.Logger
}

// NewRouter 创建 gin 路由
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(requestMetrics(cfg.Metrics, cfg.Logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/scenarios", cfg.Handler.ListScenarios)
		api.GET("/scenarios/:id", cfg.Handler.GetScenario)
		api.GET("/scenarios/:id/matrix", cfg.Handler.Matrix)
		api.POST("/scenarios/:id/evaluate", cfg.Handler.Evaluate)
		api.POST("/scenarios/:id/toggle", cfg.Handler.Toggle)
	}

	return router
}

// requestMetrics 记录请求计数与访问日志
func requestMetrics(metrics otel.Metrics, logger otel.Logger) gin.HandlerFunc {
	if metrics == nil {
		metrics = otel.NewNoopMetrics()
	}
	if logger == nil {
		logger = otel.NewNoopLogger()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		metrics.Counter(otel.MetricHTTPRequests).Add(c.Request.Context(), 1,
			otel.NewAttr("method", c.Request.Method),
			otel.NewAttr("route", route),
			otel.NewAttr("status", status),
		)
		logger.WithContext(c.Request.Context()).Debug("http request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
