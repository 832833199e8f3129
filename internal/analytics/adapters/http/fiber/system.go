package fiber

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RootMessage is the payload of GET /.
const RootMessage = "Data Visualization API Server"

type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	store Pinger
}

func NewSystemHandler(store Pinger) *SystemHandler {
	return &SystemHandler{store: store}
}

// GetRoot godoc
// @Summary Server banner
// @Tags System
// @Produce json
// @Success 200 {object} Envelope{data=string}
// @Router / [get]
func (h *SystemHandler) GetRoot(c *fiber.Ctx) error {
	return Success(c, RootMessage, "api server is running")
}

// GetHealth godoc
// @Summary Store health
// @Description Pings the analytics store
// @Tags System
// @Produce json
// @Success 200 {object} Envelope
// @Failure 503 {object} Envelope
// @Router /healthz [get]
func (h *SystemHandler) GetHealth(c *fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		return writeError(c, err)
	}
	return Success(c, fiber.Map{"store": "ok"}, "healthy")
}

// preflight answers OPTIONS requests the CORS middleware passed through.
// It runs as group middleware so unmatched GETs still reach the 404 handler.
func preflight(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodOptions {
		return c.Next()
	}
	return c.SendStatus(http.StatusNoContent)
}
