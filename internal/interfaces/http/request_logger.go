package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/b2b-portal-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y latencia de cada petición.
// Resuelve el error de la cadena con el ErrorHandler de la app para conocer el status final.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}
