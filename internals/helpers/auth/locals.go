// file: internals/helpers/auth/locals.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ============================================
   Locals keys (set by the JWT middleware)
   ============================================ */

const (
	LocUserID   = "user_id"   // int64
	LocChurchID = "church_id" // int64, 0 when the user has no church
	LocRole     = "userRole"  // string
	LocUsername = "user_name" // string
	LocRawToken = "raw_token" // string, the verified access token
	LocClaims   = "jwt_claims"
)

// Roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

func GetUserID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(LocUserID).(int64)
	if !ok || id <= 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

// GetChurchID returns the caller's church. A user without a church cannot
// own programs or templates.
func GetChurchID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(LocChurchID).(int64)
	if !ok || id <= 0 {
		return 0, fiber.NewError(fiber.StatusForbidden, "User has no associated church")
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocRole).(string)
	return strings.ToLower(strings.TrimSpace(role))
}

func GetUsername(c *fiber.Ctx) string {
	name, _ := c.Locals(LocUsername).(string)
	return name
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *fiber.Ctx, name string) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
