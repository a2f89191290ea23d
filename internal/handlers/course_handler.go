package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/edulaunch/edumarket/internal/models"
	"github.com/edulaunch/edumarket/internal/repository"
	"github.com/edulaunch/edumarket/internal/services"
)

var (
	courseService *services.CourseService
	enrollService *services.EnrollmentService
)

func InitCourseHandlers(courses *services.CourseService, enrollments *services.EnrollmentService) {
	courseService = courses
	enrollService = enrollments
}

func viewerFromCtx(c *fiber.Ctx) services.Viewer {
	viewer := services.Viewer{}
	if id, ok := c.Locals("user_id").(string); ok {
		viewer.ID = id
	}
	if name, ok := c.Locals("name").(string); ok {
		viewer.Name = name
	}
	if email, ok := c.Locals("email").(string); ok {
		viewer.Email = email
	}
	return viewer
}

// ListCoursesHandler serves the public catalog of published courses.
func ListCoursesHandler(c *fiber.Ctx) error {
	return c.JSON(courseService.GetPublishedCourses(c.Context()))
}

func GetCourseHandler(c *fiber.Ctx) error {
	course, err := courseService.GetCourseByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch course"})
	}
	if course == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	return c.JSON(course)
}

func CreateCourseHandler(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	course.Educator = viewerFromCtx(c).ID

	id, err := courseService.CreateCourse(c.Context(), &course)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": id, "message": "Course created successfully"})
}

func UpdateCourseHandler(c *fiber.Ctx) error {
	var upd models.CourseUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := courseService.UpdateCourse(c.Context(), c.Params("id"), &upd)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Course updated successfully"})
}

// EnrollCourseHandler is the viewer's "enroll" click. Free courses enroll on
// the spot; paid ones come back payment_required with no write.
func EnrollCourseHandler(c *fiber.Ctx) error {
	outcome, err := enrollService.RequestEnrollment(c.Context(), c.Params("id"), viewerFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginRequired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please login to enroll"})
		case errors.Is(err, services.ErrCourseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Enrollment failed. Please try again."})
	}
	return c.JSON(fiber.Map{"status": outcome})
}

// MyEnrollmentsHandler lists the courses whose membership set contains the
// viewer.
func MyEnrollmentsHandler(c *fiber.Ctx) error {
	viewer := viewerFromCtx(c)
	return c.JSON(courseService.GetEnrolledCourses(c.Context(), viewer.ID))
}
