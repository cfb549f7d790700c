package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RouteLogger logs each request with method, path, status, duration and trace ID.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "no-trace-id"
		}
		start := time.Now()
		err := c.Next()
		ms := time.Since(start).Milliseconds()
		status := c.Response().StatusCode()
		log.Info().
			Str("trace_id", traceID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("ms", ms).
			Msg("Request handled")
		return err
	}
}
