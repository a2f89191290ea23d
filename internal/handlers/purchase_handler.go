package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/edulaunch/edumarket/internal/models"
	"github.com/edulaunch/edumarket/internal/services"
)

var purchaseService *services.PurchaseService

func InitPurchaseHandlers(purchases *services.PurchaseService) {
	purchaseService = purchases
}

// AttestPaymentHandler records the viewer's "I have sent the money" click
// and opens a pending purchase request for admin review.
func AttestPaymentHandler(c *fiber.Ctx) error {
	requestID, err := enrollService.AttestPayment(c.Context(), c.Params("id"), viewerFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginRequired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please login first"})
		case errors.Is(err, services.ErrCourseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":    services.OutcomePaymentPending,
		"requestId": requestID,
		"message":   "Your course will be activated after verification.",
	})
}

// ListRequestsHandler serves the admin review queue for one status.
func ListRequestsHandler(c *fiber.Ctx) error {
	status := c.Query("status", models.StatusPending)
	if !models.ValidStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown status"})
	}
	return c.JSON(purchaseService.GetRequestsByStatus(c.Context(), status))
}

// RequestCountsHandler feeds the admin badge. Read-only, refreshed
// periodically by the client.
func RequestCountsHandler(c *fiber.Ctx) error {
	return c.JSON(purchaseService.CountsByStatus(c.Context()))
}

// UpdateRequestHandler is the admin transition entry point: approve (with
// courseId and userId), decline, or push a decline back to pending.
func UpdateRequestHandler(c *fiber.Ctx) error {
	var request struct {
		Status   string `json:"status"`
		CourseID string `json:"courseId"`
		UserID   string `json:"userId"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.ValidStatus(request.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown status"})
	}

	err := purchaseService.UpdateRequestStatus(c.Context(), c.Params("id"), request.Status, request.CourseID, request.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase request not found"})
		case errors.Is(err, services.ErrTransitionNotAllowed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Status transition not permitted"})
		case errors.Is(err, services.ErrEnrollTargetMissing):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Request updated successfully"})
}
