package middlewares

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler centralizes error responses: every body is {"message": ...}
// with no stack traces or internal identifiers leaked.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors carry their status code + message
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Validation errors (400, first failing field wins)
	if ve, ok := err.(validator.ValidationErrors); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(ve),
		})
	}

	// 3) Unknown errors (500)
	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}

// NotFoundHandler answers unknown routes with the path that missed.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Resource not found",
		"path":    c.Path(),
	})
}

func validationMessage(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "validation failed"
	}
	fe := ve[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %q is required", fe.Field())
	case "numeric", "number":
		return fmt.Sprintf("Field %q must be a number", fe.Field())
	default:
		return fmt.Sprintf("Field %q is invalid", fe.Field())
	}
}
