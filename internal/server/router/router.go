package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.DashboardHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/sessions", handler.CreateSession)

	s := r.Group("/sessions/:id")
	s.DELETE("", handler.DeleteSession)
	s.GET("/cows", handler.ListCows)
	s.GET("/cows/:cow", handler.GetCow)
	s.POST("/analytics", handler.OpenAnalytics)
	s.GET("/analytics", handler.GetAnalytics)
	s.PUT("/filter", handler.SetFilter)
	s.GET("/charts", handler.ListCharts)
	s.GET("/charts/:target", handler.GetChart)
	s.POST("/reload", handler.Reload)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if c.Writer.Status() >= 500 {
			logger.Warn("request failed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
