package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/db"
	"github.com/terraincognita07/hospitalconnect/internal/security"
	"github.com/terraincognita07/hospitalconnect/internal/services"
	"github.com/terraincognita07/hospitalconnect/internal/templates"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

const testSecretKey = "test-secret-key-0123456789abcdef"

type testApp struct {
	app     *fiber.App
	handler *Handler
	clock   *clock.Fake
}

type payload map[string]any

type testAppOptions struct {
	intakeCreateLimit int
	extraRoutes       func(app *fiber.App)
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithOptions(t, testAppOptions{})
}

func newTestAppWithOptions(t *testing.T, options testAppOptions) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "hospitalconnect-api-test.db"), nil)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	sealer, err := security.NewSealer([]byte(testSecretKey))
	require.NoError(t, err)

	clk := clock.NewFake(testNow)
	random := services.NewRandomSource(7)
	repos := db.NewRepositories(database)
	registrations := services.NewRegistrationService(repos.RegistrationDrafts, sealer, clk, services.WithRegistrationLatency(0))
	t.Cleanup(registrations.Close)

	handler, err := NewHandler(Dependencies{
		Intakes:            services.NewIntakeService(clk),
		Bookings:           services.NewBookingService(repos.Bookings, clk, time.UTC, 0),
		Calendar:           services.NewCalendarService(clk, random, time.UTC),
		Registrations:      registrations,
		Handoffs:           services.NewHandoffService(repos.Handoffs, []byte(testSecretKey), services.DefaultHandoffTokenTTL, clk),
		Prescriptions:      services.NewPrescriptionService(clk, 0),
		Status:             services.NewStatusBoard(random, testNow),
		Locations:          services.NewLocationTracker(random, testNow),
		Sealer:             sealer,
		Clock:              clk,
		Templates:          templates.Files,
		IntakeCreateLimit:  options.intakeCreateLimit,
		IntakeCreateWindow: time.Minute,
	})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(recover.New())
	RegisterRoutes(app, handler)
	if options.extraRoutes != nil {
		options.extraRoutes(app)
	}
	app.Use(handler.NotFound)
	return &testApp{app: app, handler: handler, clock: clk}
}

// testClient replays the client cookie issued by the first response, like a
// browser would.
type testClient struct {
	t      *testing.T
	app    *fiber.App
	cookie string
}

func (app *testApp) client(t *testing.T) *testClient {
	return &testClient{t: t, app: app.app}
}

func (client *testClient) do(method string, path string, payload any) (*http.Response, []byte) {
	client.t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(client.t, err)
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.cookie != "" {
		request.Header.Set("Cookie", client.cookie)
	}

	response, err := client.app.Test(request, -1)
	require.NoError(client.t, err)
	defer response.Body.Close()

	if value := responseCookieValue(response.Cookies(), clientCookieName); value != "" && client.cookie == "" {
		client.cookie = clientCookieName + "=" + value
	}

	raw, err := io.ReadAll(response.Body)
	require.NoError(client.t, err)
	return response, raw
}

func (client *testClient) json(method string, path string, payload any, expectedStatus int, target any) {
	client.t.Helper()

	response, raw := client.do(method, path, payload)
	require.Equal(client.t, expectedStatus, response.StatusCode, "%s %s: %s", method, path, raw)
	if target != nil {
		require.NoError(client.t, json.Unmarshal(raw, target), "%s %s: %s", method, path, raw)
	}
}
