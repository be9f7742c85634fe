package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/auth"
	"github.com/khoahotran/me-api/pkg/logger"
	"github.com/khoahotran/me-api/pkg/ratelimit"
)

const (
	HeaderRequestID        = "X-Request-ID"
	GinContextKeyRequestID = "requestID"
)

// RequestLogger tags every request with an id and writes one access log line.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(GinContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()

		log.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// ErrorMiddleware renders the last error a handler pushed with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(GinContextKeyRequestID)),
			)
		}
		c.JSON(status, appErr.ToJSON())
	}
}

// AdminMiddleware rejects the request unless X-API-Key matches the admin secret.
func AdminMiddleware(gate *auth.AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(c.GetHeader(auth.HeaderAPIKey)); err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware counts requests per client IP. A limiter backend error
// lets the request through.
func RateLimitMiddleware(limiter ratelimit.Limiter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Error("Rate limiter unavailable", err, zap.String("client_ip", c.ClientIP()))
			c.Next()
			return
		}

		if d.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(max(d.Remaining, 0)))
		}
		if !d.Allowed {
			retry := int(time.Until(d.ResetAt).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(max(retry, 1)))
			c.Error(apperror.NewTooManyRequests("rate limit exceeded, retry later"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CORSMiddleware allows the configured origins. A wildcard disables credentials.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", auth.HeaderAPIKey, HeaderRequestID},
		ExposeHeaders: []string{HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
