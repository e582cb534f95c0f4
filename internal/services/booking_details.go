package services

import (
	"strings"

	"github.com/terraincognita07/hospitalconnect/internal/models"
)

const (
	ReminderEmail = "email"
	ReminderSMS   = "sms"
	ReminderBoth  = "both"
	ReminderNone  = "none"

	ConfirmByEmail = "email"
	ConfirmBySMS   = "sms"
	ConfirmByPhone = "phone"
)

// NormalizeBookingDetails trims free text and fills the form defaults for
// the enumerated fields.
func NormalizeBookingDetails(details models.BookingDetails) models.BookingDetails {
	details.Reason = strings.TrimSpace(details.Reason)
	details.Symptoms = strings.TrimSpace(details.Symptoms)
	details.Allergies = strings.TrimSpace(details.Allergies)
	details.Medications = strings.TrimSpace(details.Medications)
	details.EmergencyContact = strings.TrimSpace(details.EmergencyContact)
	details.EmergencyPhone = strings.TrimSpace(details.EmergencyPhone)
	details.SpecialRequests = strings.TrimSpace(details.SpecialRequests)

	details.Urgency = strings.ToLower(strings.TrimSpace(details.Urgency))
	if details.Urgency == "" {
		details.Urgency = models.UrgencyRoutine
	}
	details.ReminderPreference = strings.ToLower(strings.TrimSpace(details.ReminderPreference))
	if details.ReminderPreference == "" {
		details.ReminderPreference = ReminderEmail
	}
	details.ConfirmationMethod = strings.ToLower(strings.TrimSpace(details.ConfirmationMethod))
	if details.ConfirmationMethod == "" {
		details.ConfirmationMethod = ConfirmByEmail
	}
	return details
}

// ValidateBookingDetails expects normalized details.
func ValidateBookingDetails(details models.BookingDetails) error {
	errs := ValidationErrors{}
	errs.requireText("reason", details.Reason, "Reason for visit is required")
	errs.requireText("emergency_contact", details.EmergencyContact, "Emergency contact is required")
	errs.requireText("emergency_phone", details.EmergencyPhone, "Emergency contact phone is required")

	switch details.Urgency {
	case models.UrgencyRoutine, models.UrgencyUrgent, models.UrgencyEmergency:
	default:
		errs["urgency"] = "Unknown urgency level"
	}
	switch details.ReminderPreference {
	case ReminderEmail, ReminderSMS, ReminderBoth, ReminderNone:
	default:
		errs["reminder_preference"] = "Unknown reminder preference"
	}
	switch details.ConfirmationMethod {
	case ConfirmByEmail, ConfirmBySMS, ConfirmByPhone:
	default:
		errs["confirmation_method"] = "Unknown confirmation method"
	}

	if !details.Agreements.Terms {
		errs["agreements.terms"] = "You must accept the terms and conditions"
	}
	if !details.Agreements.Privacy {
		errs["agreements.privacy"] = "You must accept the privacy policy"
	}
	if !details.Agreements.Cancellation {
		errs["agreements.cancellation"] = "You must accept the cancellation policy"
	}
	return errs.orNil()
}
