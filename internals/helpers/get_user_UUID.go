// file: internals/helpers/get_user_UUID.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrNoUser = errors.New("no authenticated user in request context")

// GetUserUUID reads the user id placed in locals by the auth middleware.
func GetUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := c.Locals("user_id"); raw != nil {
		if s, ok := raw.(string); ok {
			if parsed, err := uuid.Parse(s); err == nil {
				return parsed, nil
			}
		}
	}
	return uuid.Nil, ErrNoUser
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}
