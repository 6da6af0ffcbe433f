package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID reads a non-negative integer path segment. Anything other than
// plain digits, or a value that overflows int64, is treated like an
// unmatched path.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	if raw == "" {
		return 0, fiber.ErrNotFound
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, fiber.ErrNotFound
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}
