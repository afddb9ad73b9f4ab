package middlewares

import (
	"log"

	"ventas-backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForKind maps the service error taxonomy to HTTP status codes.
func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict, services.KindInsufficientStock:
		return fiber.StatusConflict
	case services.KindIntegrity:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Typed service errors (stable kind + caller-safe message)
	if se := services.AsError(err); se != nil {
		if se.Kind == services.KindInfrastructure {
			log.Printf("infrastructure error: %v (%v)", se.Message, se.Unwrap())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"kind":    se.Kind,
				"message": se.Message,
			})
		}
		return c.Status(statusForKind(se.Kind)).JSON(fiber.Map{
			"kind":    se.Kind,
			"message": se.Message,
		})
	}

	// 2) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 3) Validation errors (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 4) Unknown errors (500)
	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
