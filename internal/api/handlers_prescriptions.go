package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

const refillRequestTimeout = 30 * time.Second

func (handler *Handler) ListPrescriptions(c *fiber.Ctx) error {
	prescriptions, err := handler.prescriptions.List(services.PrescriptionFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Doctor: c.Query("doctor"),
		Date:   c.Query("date"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"prescriptions": prescriptions})
}

func (handler *Handler) PrescriptionStats(c *fiber.Ctx) error {
	return c.JSON(handler.prescriptions.Stats())
}

func (handler *Handler) RequestRefill(c *fiber.Ctx) error {
	request := models.RefillRequest{}
	if err := parseBody(c, &request); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), refillRequestTimeout)
	defer cancel()
	confirmation, err := handler.prescriptions.RequestRefill(ctx, c.Params("id"), request)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(confirmation)
}
