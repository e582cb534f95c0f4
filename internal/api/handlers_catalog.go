package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

func (handler *Handler) SearchSymptoms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"symptoms": services.SearchSymptoms(c.Query("q"))})
}

func (handler *Handler) SymptomCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"symptoms":     models.CommonSymptoms(),
		"quick_select": models.QuickSelectSymptoms(),
		"durations":    models.DurationBuckets(),
	})
}

func (handler *Handler) BodyAreas(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"areas": models.BodyAreas()})
}

func (handler *Handler) Doctors(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"doctors": models.DoctorRoster()})
}

func (handler *Handler) Doctor(c *fiber.Ctx) error {
	doctor, ok := models.FindDoctor(c.Params("id"))
	if !ok {
		return respondError(c, services.ErrDoctorNotFound)
	}
	return c.JSON(doctor)
}

func (handler *Handler) DoctorLocation(c *fiber.Ctx) error {
	location, err := handler.locations.Location(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(location)
}

func (handler *Handler) AppointmentTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"appointment_types": models.AppointmentTypes()})
}

func (handler *Handler) LiveStatus(c *fiber.Ctx) error {
	return c.JSON(handler.status.Snapshot())
}
