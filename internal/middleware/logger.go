package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id to and from clients.
const RequestIDHeader = echo.HeaderXRequestID

// LoggerKey is the echo context key holding the per-request log entry.
const LoggerKey = "logger"

// RequestLogger assigns every request an id, stores a log entry tagged
// with it under LoggerKey, and logs the outcome once the handler returns.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			rid := req.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(rid); err != nil {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(RequestIDHeader, rid)

			entry := log.WithField("request_id", rid)
			c.Set(LoggerKey, logrus.FieldLogger(entry))

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			status := c.Response().Status
			fields := entry.WithFields(logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     status,
				"duration":   time.Since(start),
				"client_ip":  c.RealIP(),
				"user_agent": req.UserAgent(),
			})
			switch {
			case status >= 500:
				fields.Error("request failed")
			case status >= 400:
				fields.Warn("request rejected")
			default:
				fields.Info("request processed")
			}
			return nil
		}
	}
}
