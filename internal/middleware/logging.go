package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/metrics"
	"go.uber.org/zap"
)

// RequestLogger logs every request and records its metrics.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start).Seconds()

		metrics.ReqCount.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
		metrics.ReqDuration.WithLabelValues(c.Request.Method, path).Observe(duration)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Float64("duration", duration),
			zap.String("client_ip", c.ClientIP()),
		}
		if userID, ok := GetUserID(c); ok {
			fields = append(fields, zap.Uint64("user_id", userID))
		}
		logger.Log.Info("http_request", fields...)
	}
}

// Recovery turns a panic into a 500 response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("panic_recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				apierrors.InternalError(c, "")
				c.Abort()
			}
		}()
		c.Next()
	}
}
