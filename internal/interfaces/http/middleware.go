package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cutman-web/internal/application/dto"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// statusFor código HTTP para un error de dominio.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrBusy), errors.Is(err, domain.ErrChatClosed), errors.Is(err, domain.ErrNoIdentity):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrUnexpectedShape):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// RequestLogger registra cada request con método, ruta, status y duración.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Bool("htmx", isHTMX(c)).
			Msg("request")
		return err
	}
}

// ErrorHandler respuesta de error: JSON bajo /api, texto plano en el resto.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "error interno"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		}
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(code).JSON(dto.ErrorResponse{Code: errorCode(code), Message: msg})
		}
		return c.Status(code).SendString(msg)
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "VALIDATION"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusBadGateway:
		return "BAD_GATEWAY"
	}
	return "INTERNAL"
}
