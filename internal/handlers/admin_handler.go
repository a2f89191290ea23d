package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edulaunch/edumarket/internal/services"
)

var (
	adminService     *services.AdminService
	adminUserService *services.UserService
)

func InitAdminHandlers(admins *services.AdminService, users *services.UserService) {
	adminService = admins
	adminUserService = users
}

// ListAdminsHandler returns the current allow-list.
func ListAdminsHandler(c *fiber.Ctx) error {
	return c.JSON(adminService.GetAdmins(c.Context()))
}

// AddAdminHandler grants admin capability. Business rejections (never signed
// up, already an admin) come back as a structured result, not an error.
func AddAdminHandler(c *fiber.Ctx) error {
	var request struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&request); err != nil || request.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing email"})
	}

	return c.JSON(adminService.AddAdmin(c.Context(), request.Email))
}

// RemoveAdminHandler revokes admin capability. Removing a non-member is a
// no-op success.
func RemoveAdminHandler(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing email"})
	}
	return c.JSON(adminService.RemoveAdmin(c.Context(), email))
}

// AdminEnrollHandler lets an admin enroll a student by email, converging on
// the same membership mutation the approval and free paths use.
func AdminEnrollHandler(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		CourseID string `json:"courseId"`
	}
	if err := c.BodyParser(&request); err != nil || request.Email == "" || request.CourseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing email or courseId"})
	}

	user := adminUserService.GetUserByEmail(c.Context(), request.Email)
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found. They must sign up first."})
	}

	if err := courseService.EnrollStudent(c.Context(), request.CourseID, user.ID.Hex()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Student enrolled successfully"})
}
