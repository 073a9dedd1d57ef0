// handlers/respond.go
package handlers

import (
	"errors"
	"log"

	"coin-rewards-system/services"

	"github.com/gofiber/fiber/v2"
)

// fail maps service errors onto HTTP statuses. Storage errors are logged
// and come back as a generic 500 so internals never leak.
func fail(c *fiber.Ctx, err error) error {
	return failWith(c, err, nil)
}

// failWith is fail with a payload attached, for rejections that still carry
// state the client needs (quota usage, limits).
func failWith(c *fiber.Ctx, err error, data any) error {
	status := fiber.StatusInternalServerError
	message := "something went wrong"

	switch {
	case services.IsValidation(err):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAppNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrSubmissionNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrAlreadyClaimed),
		errors.Is(err, services.ErrPendingWithdrawalExists),
		errors.Is(err, services.ErrPendingSubmissionExists),
		errors.Is(err, services.ErrAlreadyApproved),
		errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrMobileNumberTaken),
		errors.Is(err, services.ErrAdminEmailTaken),
		errors.Is(err, services.ErrReferredByImmutable):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrQuotaExceeded),
		errors.Is(err, services.ErrNothingToClaim),
		errors.Is(err, services.ErrInsufficientCoins),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrInvalidReferralCode),
		errors.Is(err, services.ErrAppInactive):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidPassword):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrUserBlocked):
		status, message = fiber.StatusForbidden, err.Error()
	default:
		log.Printf("❌ [HTTP] %s %s: %v", c.Method(), c.Path(), err)
	}

	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
