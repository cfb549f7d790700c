package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the caller-facing error shape.
type ErrorBody struct {
	Message string `json:"message"`
}

// Raise sends a structured caller error with the raiser-chosen status code.
// Internal faults do not go through here; they bubble to the global error
// handler, which answers in plain text.
func Raise(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(ErrorBody{Message: message})
}
