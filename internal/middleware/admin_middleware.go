package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/edulaunch/edumarket/internal/services"
)

var (
	errMissingToken = errors.New("Missing token")
	errInvalidToken = errors.New("Invalid token")

	adminService *services.AdminService
)

// InitAdmin wires the allow-list service the admin gate consults.
func InitAdmin(svc *services.AdminService) {
	adminService = svc
}

// AdminMiddleware ensures that only allow-listed admins can access admin
// routes. The check is fail-closed: no allow-list document, or any failure
// reading it, means no access.
func AdminMiddleware(c *fiber.Ctx) error {
	claims, err := parseToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	userID, userExists := claims["user_id"].(string)
	email, emailExists := claims["email"].(string)
	if !userExists || !emailExists {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token payload"})
	}

	if !adminService.IsAdmin(c.Context(), email) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied. Admins only."})
	}

	c.Locals("user_id", userID)
	c.Locals("email", email)
	if name, ok := claims["name"].(string); ok {
		c.Locals("name", name)
	}

	return c.Next()
}
