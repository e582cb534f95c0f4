package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

const registrationSubmitTimeout = 30 * time.Second

func (handler *Handler) GetRegistrationDraft(c *fiber.Ctx) error {
	form, err := handler.registrations.LoadDraft(currentClientID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"form":           form,
		"sections":       models.RegistrationSections(),
		"schema_version": models.RegistrationDraftSchemaVersion,
	})
}

// QueueRegistrationDraft accepts the whole form on every change; the write
// happens once the client pauses for the debounce interval.
func (handler *Handler) QueueRegistrationDraft(c *fiber.Ctx) error {
	form := models.RegistrationForm{}
	if err := parseBody(c, &form); err != nil {
		return err
	}
	queued := handler.registrations.QueueDraft(currentClientID(c), form)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"form": queued})
}

func (handler *Handler) DiscardRegistrationDraft(c *fiber.Ctx) error {
	if err := handler.registrations.DiscardDraft(currentClientID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ValidateRegistrationSection(c *fiber.Ctx) error {
	form := models.RegistrationForm{}
	if err := parseBody(c, &form); err != nil {
		return err
	}
	result, err := handler.registrations.CompleteSection(currentClientID(c), c.Params("section"), form)
	if err != nil {
		return respondError(c, err)
	}
	if !result.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}
	return c.JSON(result)
}

func (handler *Handler) SubmitRegistration(c *fiber.Ctx) error {
	form := models.RegistrationForm{}
	if err := parseBody(c, &form); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), registrationSubmitTimeout)
	defer cancel()
	result, err := handler.registrations.Submit(ctx, currentClientID(c), form)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
