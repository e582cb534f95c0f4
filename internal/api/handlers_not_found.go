package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if isAPIPath(c) || acceptsJSON(c) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title":       "HospitalConnect | Page Not Found",
		"PrimaryPath": "/",
		"RequestPath": c.Path(),
	})
}
