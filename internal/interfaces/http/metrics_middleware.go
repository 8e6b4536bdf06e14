package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/pkg/metrics"
)

// MetricsMiddleware cuenta cada petición atendida por método, ruta y status.
// Usa la ruta registrada (c.Route().Path) y no el path crudo, para que los
// parámetros (:id) no exploten la cardinalidad de la serie.
func MetricsMiddleware(mtr *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// El error todavía no pasó por el ErrorHandler de fiber.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		mtr.HTTPRequests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}
