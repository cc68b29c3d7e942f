package utils

import "github.com/gofiber/fiber/v2"

// JSONSuccess writes the success envelope used by every handler.
func JSONSuccess(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"data":    data,
		"message": message,
	})
}

// JSONError writes the error envelope. Most error paths go through the
// central fiber error handler instead of calling this directly.
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
	})
}
