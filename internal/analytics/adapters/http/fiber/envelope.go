package fiber

import (
	"errors"
	"net/http"

	"attribution-analytics-service/internal/analytics/core/domain"
	"attribution-analytics-service/internal/logging"

	"github.com/gofiber/fiber/v2"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every response body. Data is null exactly when Status is
// "error".
type Envelope struct {
	Status  string `json:"status" example:"success"`
	Code    int    `json:"code" example:"200"`
	Message string `json:"message" example:"data fetched"`
	Data    any    `json:"data"`
}

func SuccessEnvelope(data any, message string) Envelope {
	return Envelope{Status: StatusSuccess, Code: http.StatusOK, Message: message, Data: data}
}

func ErrorEnvelope(code int, message string) Envelope {
	return Envelope{Status: StatusError, Code: code, Message: message}
}

func Success(c *fiber.Ctx, data any, message string) error {
	return c.Status(http.StatusOK).JSON(SuccessEnvelope(data, message))
}

func Failure(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(ErrorEnvelope(code, message))
}

// statusFor maps the error taxonomy onto a status code and a client-safe
// message. Statement text never leaves this package.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNoData):
		return http.StatusNotFound, "no data available"
	case errors.Is(err, domain.ErrConnection):
		return http.StatusServiceUnavailable, "analytics store unavailable"
	case errors.Is(err, domain.ErrPrepare), errors.Is(err, domain.ErrExecution):
		return http.StatusInternalServerError, "query failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeError(c *fiber.Ctx, err error) error {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.Path()).Int("status", code).Msg("request failed")
	}
	return Failure(c, code, msg)
}

// ErrorHandler renders errors that escape the handlers (unknown routes,
// recovered panics) as envelopes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Failure(c, fe.Code, fe.Message)
	}
	return writeError(c, err)
}
