package models

import "time"

type AppointmentType struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Fee             int      `json:"fee"`
	Description     string   `json:"description"`
	FeatureTags     []string `json:"feature_tags"`
}

func AppointmentTypes() []AppointmentType {
	return []AppointmentType{
		{
			ID:              "consultation",
			Name:            "In-Person Consultation",
			DurationMinutes: 30,
			Fee:             1500,
			Description:     "Face-to-face consultation at the hospital",
			FeatureTags:     []string{"Physical examination", "Lab test orders", "Prescription"},
		},
		{
			ID:              "telemedicine",
			Name:            "Telemedicine",
			DurationMinutes: 20,
			Fee:             1000,
			Description:     "Video consultation from your home",
			FeatureTags:     []string{"Video call", "Digital prescription", "Follow-up scheduling"},
		},
		{
			ID:              "followup",
			Name:            "Follow-up Visit",
			DurationMinutes: 15,
			Fee:             750,
			Description:     "Review previous consultation results",
			FeatureTags:     []string{"Progress review", "Treatment adjustment", "Next steps planning"},
		},
		{
			ID:              "emergency",
			Name:            "Urgent Care",
			DurationMinutes: 45,
			Fee:             2000,
			Description:     "Same-day appointment for urgent issues",
			FeatureTags:     []string{"Priority scheduling", "Immediate attention", "Emergency protocols"},
		},
	}
}

func FindAppointmentType(id string) (AppointmentType, bool) {
	for _, appointmentType := range AppointmentTypes() {
		if appointmentType.ID == id {
			return appointmentType, true
		}
	}
	return AppointmentType{}, false
}

type TimeSlot struct {
	ID        int    `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
	WaitTime  string `json:"wait_time,omitempty"`
}

func DailyTimeSlots() []TimeSlot {
	return []TimeSlot{
		{ID: 1, Time: "09:00 AM", Available: true, WaitTime: "5 min"},
		{ID: 2, Time: "09:30 AM", Available: true, WaitTime: "10 min"},
		{ID: 3, Time: "10:00 AM", Available: false},
		{ID: 4, Time: "10:30 AM", Available: true, WaitTime: "15 min"},
		{ID: 5, Time: "11:00 AM", Available: true, WaitTime: "5 min"},
		{ID: 6, Time: "11:30 AM", Available: true, WaitTime: "20 min"},
		{ID: 7, Time: "02:00 PM", Available: true, WaitTime: "5 min"},
		{ID: 8, Time: "02:30 PM", Available: true, WaitTime: "10 min"},
		{ID: 9, Time: "03:00 PM", Available: false},
		{ID: 10, Time: "03:30 PM", Available: true, WaitTime: "15 min"},
		{ID: 11, Time: "04:00 PM", Available: true, WaitTime: "5 min"},
		{ID: 12, Time: "04:30 PM", Available: true, WaitTime: "25 min"},
	}
}

func FindTimeSlot(id int) (TimeSlot, bool) {
	for _, slot := range DailyTimeSlots() {
		if slot.ID == id {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

const (
	UrgencyRoutine   = "routine"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

type BookingAgreements struct {
	Terms        bool `json:"terms"`
	Privacy      bool `json:"privacy"`
	Cancellation bool `json:"cancellation"`
}

type BookingDetails struct {
	Reason             string            `json:"reason"`
	Urgency            string            `json:"urgency"`
	Symptoms           string            `json:"symptoms"`
	Allergies          string            `json:"allergies"`
	Medications        string            `json:"medications"`
	EmergencyContact   string            `json:"emergency_contact"`
	EmergencyPhone     string            `json:"emergency_phone"`
	SpecialRequests    string            `json:"special_requests"`
	ReminderPreference string            `json:"reminder_preference"`
	ConfirmationMethod string            `json:"confirmation_method"`
	Agreements         BookingAgreements `json:"agreements"`
}

type PatientReference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultPatient stands in for the signed-in patient; the service has no
// accounts.
func DefaultPatient() PatientReference {
	return PatientReference{ID: "HC-2024-001", Name: "Sharath R"}
}

// BookingRecord is created once per successful submission and never
// mutated afterwards.
type BookingRecord struct {
	ID              string           `gorm:"primaryKey" json:"id"`
	ClientID        string           `gorm:"not null;index" json:"-"`
	Patient         PatientReference `gorm:"serializer:json" json:"patient"`
	Doctor          DoctorRecord     `gorm:"serializer:json" json:"doctor"`
	Date            time.Time        `gorm:"type:date;not null" json:"date"`
	Slot            TimeSlot         `gorm:"serializer:json" json:"slot"`
	AppointmentType AppointmentType  `gorm:"serializer:json" json:"appointment_type"`
	Fee             int              `gorm:"not null" json:"fee"`
	DurationMinutes int              `gorm:"not null" json:"duration_minutes"`
	Location        string           `json:"location"`
	Details         BookingDetails   `gorm:"serializer:json" json:"details"`
	CreatedAt       time.Time        `json:"created_at"`
}
