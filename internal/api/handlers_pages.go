package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	return handler.render(c, "home", fiber.Map{
		"Title":            "HospitalConnect",
		"Doctors":          models.DoctorRoster(),
		"AppointmentTypes": models.AppointmentTypes(),
	})
}

func (handler *Handler) ShowSymptomChecker(c *fiber.Ctx) error {
	return handler.render(c, "symptom_checker", fiber.Map{
		"Title":       "HospitalConnect | Symptom Checker",
		"QuickSelect": models.QuickSelectSymptoms(),
		"BodyAreas":   models.BodyAreas(),
		"Durations":   models.DurationBuckets(),
	})
}

// ShowBooking resolves the doctor the same way POST /api/bookings does, so
// the page header and the flow the page starts always agree.
func (handler *Handler) ShowBooking(c *fiber.Ctx) error {
	doctor, err := handler.handoffs.ResolveDoctor(currentClientID(c), c.Query("handoff"))
	if err != nil {
		if !isHandoffTokenError(err) {
			return err
		}
		doctor = models.DefaultBookingDoctor()
	}

	return handler.render(c, "booking", fiber.Map{
		"Title":            "HospitalConnect | Book Appointment",
		"Doctor":           doctor,
		"HandoffToken":     strings.TrimSpace(c.Query("handoff")),
		"AppointmentTypes": models.AppointmentTypes(),
		"TimeSlots":        handler.calendar.TimeSlots(),
	})
}

func (handler *Handler) ShowRegistration(c *fiber.Ctx) error {
	form, err := handler.registrations.LoadDraft(currentClientID(c))
	if err != nil {
		return err
	}
	return handler.render(c, "registration", fiber.Map{
		"Title":    "HospitalConnect | Patient Registration",
		"Sections": models.RegistrationSections(),
		"Form":     form,
	})
}

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	return handler.render(c, "dashboard", fiber.Map{
		"Title":   "HospitalConnect | Patient Dashboard",
		"Patient": models.DefaultPatient(),
		"Stats":   handler.prescriptions.Stats(),
	})
}

func (handler *Handler) ShowPrescriptions(c *fiber.Ctx) error {
	prescriptions, err := handler.prescriptions.List(services.PrescriptionFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Doctor: c.Query("doctor"),
		Date:   c.Query("date"),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidPrescriptionFilter) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return handler.render(c, "prescriptions", fiber.Map{
		"Title":         "HospitalConnect | Prescriptions",
		"Prescriptions": prescriptions,
		"Stats":         handler.prescriptions.Stats(),
		"Pharmacies":    models.RefillPharmacies(),
	})
}

func (handler *Handler) ShowDoctorProfile(c *fiber.Ctx) error {
	doctorID := strings.TrimSpace(c.Query("id"))
	doctor, ok := models.FindDoctor(doctorID)
	if doctorID == "" {
		doctor, ok = models.DefaultBookingDoctor(), true
	}
	if !ok {
		return handler.NotFound(c)
	}

	location, err := handler.locations.Location(doctor.ID)
	if err != nil {
		return err
	}
	return handler.render(c, "doctor_profile", fiber.Map{
		"Title":    "HospitalConnect | " + doctor.Name,
		"Doctor":   doctor,
		"Location": location,
	})
}

func isHandoffTokenError(err error) bool {
	return errors.Is(err, services.ErrHandoffTokenInvalid) ||
		errors.Is(err, services.ErrHandoffTokenInvalidPurpose) ||
		errors.Is(err, services.ErrHandoffTokenExpired) ||
		errors.Is(err, services.ErrHandoffTokenWrongClient) ||
		errors.Is(err, services.ErrDoctorNotFound)
}
