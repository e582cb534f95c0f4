package api

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/hospitalconnect/internal/security"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, errs services.ValidationErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": errs,
	})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func isAPIPath(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

func parseBody(c *fiber.Ctx, target any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(target); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

func paramInt(c *fiber.Ctx, name string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return 0, false
	}
	return value, true
}

var notFoundErrors = []error{
	services.ErrIntakeNotFound,
	services.ErrDoctorNotFound,
	services.ErrSymptomNotFound,
	services.ErrBookingFlowNotFound,
	services.ErrBookingNotFound,
	services.ErrPrescriptionNotFound,
}

var badRequestErrors = []error{
	services.ErrInvalidSymptomName,
	services.ErrInvalidSymptomField,
	services.ErrInvalidSymptomDuration,
	services.ErrUnknownBodyArea,
	services.ErrStepAhead,
	services.ErrIntakeNoMatches,
	services.ErrUnknownAppointmentType,
	services.ErrUnknownTimeSlot,
	services.ErrInvalidDate,
	services.ErrInvalidMonth,
	services.ErrBookingDateInPast,
	services.ErrInvalidPrescriptionFilter,
	services.ErrUnknownRegistrationSection,
	services.ErrHandoffTokenMissing,
	services.ErrHandoffTokenInvalid,
	services.ErrHandoffTokenInvalidPurpose,
	services.ErrHandoffTokenExpired,
	services.ErrHandoffTokenWrongClient,
	security.ErrInvalidSealedValue,
}

var conflictErrors = []error{
	services.ErrTimeSlotUnavailable,
	services.ErrBookingDateRequired,
	services.ErrBookingIncomplete,
	services.ErrSubmissionInProgress,
	services.ErrSubmissionCancelled,
	services.ErrBookingConfirmed,
	services.ErrBookingNotConfirmed,
	services.ErrRefillUnavailable,
}

// respondError maps a service error to its response. Unknown errors are
// returned as is and reach ErrorHandler.
func respondError(c *fiber.Ctx, err error) error {
	var errs services.ValidationErrors
	if errors.As(err, &errs) {
		return validationError(c, errs)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apiError(c, fiber.StatusRequestTimeout, "request cancelled")
	}
	for _, known := range notFoundErrors {
		if errors.Is(err, known) {
			return apiError(c, fiber.StatusNotFound, known.Error())
		}
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			return apiError(c, fiber.StatusBadRequest, known.Error())
		}
	}
	for _, known := range conflictErrors {
		if errors.Is(err, known) {
			return apiError(c, fiber.StatusConflict, known.Error())
		}
	}
	return err
}
