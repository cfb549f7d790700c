package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler for unmapped faults. Handlers send
// their own JSON for caller errors; anything that reaches here answers in
// plain text: a custom 404 for unknown routes, a generic 500 with the error
// message interpolated for everything else.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code == fiber.StatusNotFound {
		return c.Status(fiber.StatusNotFound).SendString("Sorry, Nothing at this URL.")
	}
	return c.Status(code).SendString(fmt.Sprintf("Sorry, unexpected error: %s", message))
}
