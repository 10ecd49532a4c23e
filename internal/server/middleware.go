package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-studentservices/internal/apperrors"
)

const (
	// RequestIDKey is the gin context key holding the request ID.
	RequestIDKey = "request_id"
	// RequestIDHeader is read from and echoed to clients.
	RequestIDHeader = "X-Request-ID"
)

// RequestID reuses an upstream X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request handled", fields...)
		}
	}
}

// ErrorHandler renders the last error attached with c.Error as JSON.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperrors.From(err)
		if appErr.HTTPStatus >= 500 {
			log.Error("unexpected error",
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.Error(err),
			)
		}

		response := gin.H{
			"type":    string(appErr.Type),
			"message": appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			response["errors"] = appErr.Fields
		}
		if appErr.Detail != "" && appErr.HTTPStatus < 500 {
			response["detail"] = appErr.Detail
		}
		c.JSON(appErr.HTTPStatus, response)
	}
}
