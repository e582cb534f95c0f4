package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts every route. Routes after the health check are
// scoped to the anonymous client of the request.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Use(RequestContext, handler.ClientIdentity)

	app.Get("/", handler.ShowHome)
	app.Get("/symptom-checker", handler.ShowSymptomChecker)
	app.Get("/appointment-booking", handler.ShowBooking)
	app.Get("/patient-registration", handler.ShowRegistration)
	app.Get("/patient-dashboard", handler.ShowDashboard)
	app.Get("/prescription-management", handler.ShowPrescriptions)
	app.Get("/doctor-profile", handler.ShowDoctorProfile)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/symptoms/search", handler.SearchSymptoms)
	api.Get("/symptoms/catalog", handler.SymptomCatalog)
	api.Get("/body-areas", handler.BodyAreas)
	api.Get("/doctors", handler.Doctors)
	api.Get("/doctors/:id", handler.Doctor)
	api.Get("/doctors/:id/location", handler.DoctorLocation)
	api.Get("/appointment-types", handler.AppointmentTypes)
	api.Get("/status", handler.LiveStatus)

	intake := api.Group("/intake")
	intake.Post("", handler.CreateIntake)
	intake.Get("/:id", handler.GetIntake)
	intake.Delete("/:id", handler.DeleteIntake)
	intake.Post("/:id/symptoms", handler.AddIntakeSymptom)
	intake.Patch("/:id/symptoms/:symptomID", handler.UpdateIntakeSymptom)
	intake.Delete("/:id/symptoms/:symptomID", handler.RemoveIntakeSymptom)
	intake.Post("/:id/areas/:area", handler.ToggleIntakeArea)
	intake.Post("/:id/advance", handler.AdvanceIntake)
	intake.Post("/:id/retreat", handler.RetreatIntake)
	intake.Post("/:id/reset", handler.ResetIntake)
	intake.Post("/:id/jump/:step", handler.JumpIntake)
	intake.Post("/:id/emergency/dismiss", handler.DismissIntakeEmergency)
	intake.Get("/:id/recommendations", handler.IntakeRecommendations)
	intake.Post("/:id/doctors/:doctorID/select", handler.SelectIntakeDoctor)

	bookings := api.Group("/bookings")
	bookings.Post("", handler.StartBooking)
	bookings.Get("/:id", handler.GetBooking)
	bookings.Delete("/:id", handler.CloseBooking)
	bookings.Post("/:id/type", handler.SelectAppointmentType)
	bookings.Post("/:id/date", handler.SelectBookingDate)
	bookings.Post("/:id/slot", handler.SelectBookingSlot)
	bookings.Post("/:id/submit", handler.SubmitBooking)
	bookings.Post("/:id/reschedule", handler.RescheduleBooking)
	bookings.Get("/:id/confirmation.txt", handler.BookingConfirmationText)
	bookings.Get("/:id/confirmation.pdf", handler.BookingConfirmationPDF)
	bookings.Get("/:id/links", handler.BookingLinks)

	calendar := api.Group("/calendar")
	calendar.Get("", handler.CalendarMonth)
	calendar.Get("/slots", handler.CalendarSlots)

	registration := api.Group("/registration")
	registration.Get("/draft", handler.GetRegistrationDraft)
	registration.Put("/draft", handler.QueueRegistrationDraft)
	registration.Delete("/draft", handler.DiscardRegistrationDraft)
	registration.Post("/sections/:section/validate", handler.ValidateRegistrationSection)
	registration.Post("/submit", handler.SubmitRegistration)

	prescriptions := api.Group("/prescriptions")
	prescriptions.Get("", handler.ListPrescriptions)
	prescriptions.Get("/stats", handler.PrescriptionStats)
	prescriptions.Post("/:id/refill", handler.RequestRefill)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
