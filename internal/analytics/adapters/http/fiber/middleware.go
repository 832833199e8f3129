package fiber

import (
	"fmt"
	"net/http"
	"time"

	"attribution-analytics-service/internal/logging"
	"attribution-analytics-service/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request and records its latency. Errors
// from the chain are rendered here so the logged status is the one sent.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(http.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		metrics.ObserveRequest(route, status, start)

		ev := logging.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = logging.Error()
		case status >= http.StatusBadRequest:
			ev = logging.Warn()
		}

		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("request")

		return nil
	}
}

func logPanic(c *fiber.Ctx, e any) {
	logging.Error().
		Str("path", c.Path()).
		Str("panic", fmt.Sprint(e)).
		Msg("recovered from panic")
}
