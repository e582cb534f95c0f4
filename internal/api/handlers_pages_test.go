package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

func TestPagesRender(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	client := app.client(t)

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "Care when you need it"},
		{path: "/symptom-checker", want: "Where does it hurt?"},
		{path: "/appointment-booking", want: "Book an appointment"},
		{path: "/patient-registration", want: "Patient Registration"},
		{path: "/patient-dashboard", want: "Welcome back, Sharath R"},
		{path: "/prescription-management", want: "CVS Pharmacy - Main Street"},
		{path: "/doctor-profile?id=dr-davis", want: "Currently at"},
	}

	for _, test := range tests {
		response, body := client.do(http.MethodGet, test.path, nil)
		require.Equal(t, http.StatusOK, response.StatusCode, test.path)
		assert.Contains(t, response.Header.Get("Content-Type"), "text/html", test.path)
		assert.Contains(t, string(body), test.want, test.path)
		assert.Contains(t, string(body), "doctors available", test.path)
	}
}

func TestBookingPageFallsBackOnBadHandoff(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	response, body := app.client(t).do(http.MethodGet, "/appointment-booking?handoff=garbage", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, string(body), "Book an appointment")
}

func TestNotFoundResponses(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	client := app.client(t)

	response, body := client.do(http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Equal(t, "not found", readAPIError(t, body))

	response, body = client.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Contains(t, string(body), "Page not found")
	assert.Contains(t, string(body), "/nope")

	response, _ = client.do(http.MethodGet, "/doctor-profile?id=dr-nobody", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestErrorBoundary(t *testing.T) {
	t.Parallel()

	app := newTestAppWithOptions(t, testAppOptions{extraRoutes: func(app *fiber.App) {
		app.Get("/api/test/panic", func(c *fiber.Ctx) error {
			panic("boom")
		})
		app.Get("/test/unknown", func(c *fiber.Ctx) error {
			return respondError(c, errors.New("disk on fire"))
		})
		app.Get("/test/bad", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusBadRequest, "bad month")
		})
	}})
	client := app.client(t)

	result := struct {
		Error       string `json:"error"`
		Recoverable bool   `json:"recoverable"`
	}{}
	client.json(http.MethodGet, "/api/test/panic", nil, http.StatusInternalServerError, &result)
	assert.False(t, result.Recoverable)
	assert.Equal(t, unrecoverableMessage, result.Error)

	response, body := client.do(http.MethodGet, "/test/unknown", nil)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Contains(t, string(body), "Something went wrong")
	assert.NotContains(t, string(body), "disk on fire")

	response, body = client.do(http.MethodGet, "/test/bad", nil)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Contains(t, string(body), "bad month")
	assert.Contains(t, string(body), "Try again")
}

func TestRespondErrorMapsServiceErrors(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/:kind", func(c *fiber.Ctx) error {
		switch c.Params("kind") {
		case "validation":
			return respondError(c, services.ValidationErrors{"reason": "required"})
		case "conflict":
			return respondError(c, services.ErrTimeSlotUnavailable)
		default:
			return respondError(c, services.ErrPrescriptionNotFound)
		}
	})

	for kind, status := range map[string]int{
		"validation": http.StatusUnprocessableEntity,
		"conflict":   http.StatusConflict,
		"missing":    http.StatusNotFound,
	} {
		response, err := app.Test(newRequest(http.MethodGet, "/"+kind), -1)
		require.NoError(t, err)
		assert.Equal(t, status, response.StatusCode, kind)
	}
}
