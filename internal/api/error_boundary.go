package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/hospitalconnect/internal/observability"
)

const unrecoverableMessage = "Something went wrong on our side. Please reload the page."

// ErrorHandler is the app's error boundary. Client errors are recoverable:
// the caller can correct the request and retry. Anything else is logged and
// answered with a generic 500 that carries no internals.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := unrecoverableMessage

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		status = fiberErr.Code
		message = fiberErr.Message
	} else {
		observability.LoggerFromContext(c.UserContext()).Error("unhandled request error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	recoverable := status < fiber.StatusInternalServerError

	if isAPIPath(c) || acceptsJSON(c) {
		return c.Status(status).JSON(fiber.Map{
			"error":       message,
			"recoverable": recoverable,
		})
	}

	c.Status(status)
	if renderErr := handler.render(c, "error", fiber.Map{
		"Title":       "HospitalConnect | Error",
		"StatusCode":  status,
		"Message":     message,
		"Recoverable": recoverable,
		"RetryPath":   c.OriginalURL(),
	}); renderErr != nil {
		return c.Status(status).SendString(message)
	}
	return nil
}
