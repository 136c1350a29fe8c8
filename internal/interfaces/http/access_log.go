package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Farmacias-api/pkg/logger"
)

// RequestLogger registra cada petición (método, ruta, estado, latencia, usuario) y alimenta las métricas.
// m puede ser nil.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := c.Route().Path
		if m != nil {
			m.ObserveRequest(c.Method(), route, status, elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed)
		if uid := GetUserID(c); uid != "" {
			ev = ev.Str("user_id", uid)
		}
		if reqErr, ok := c.Locals(LocalError).(error); ok {
			ev = ev.Err(reqErr)
			countDomainEvent(m, reqErr)
		} else if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("request")
		return err
	}
}

func countDomainEvent(m *metrics.Metrics, err error) {
	if m == nil {
		return
	}
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		m.Event(metrics.EventDuplicateRejected)
	case errors.Is(err, domain.ErrInconsistentState):
		m.Event(metrics.EventInconsistentStock)
	case errors.Is(err, domain.ErrUnauthorized):
		m.Event(metrics.EventLoginFailed)
	}
}
