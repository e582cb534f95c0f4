package services

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

func sampleBookingRecord(t *testing.T, slotID int) models.BookingRecord {
	t.Helper()

	doctor, ok := models.FindDoctor("dr-davis")
	require.True(t, ok)
	slot, ok := models.FindTimeSlot(slotID)
	require.True(t, ok)
	appointmentType, ok := models.FindAppointmentType("consultation")
	require.True(t, ok)

	return models.BookingRecord{
		ID:              "APT-1773133200000-AB12",
		Patient:         models.DefaultPatient(),
		Doctor:          doctor,
		Date:            time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		Slot:            slot,
		AppointmentType: appointmentType,
		Fee:             appointmentType.Fee,
		DurationMinutes: appointmentType.DurationMinutes,
		Location:        doctor.Location,
	}
}

func TestBuildConfirmationText(t *testing.T) {
	t.Parallel()

	text := BuildConfirmationText(sampleBookingRecord(t, 4))

	assert.True(t, strings.HasPrefix(text, "APPOINTMENT CONFIRMATION\n"))
	assert.Contains(t, text, "Appointment ID: APT-1773133200000-AB12\n")
	assert.Contains(t, text, "Patient: Sharath R\n")
	assert.Contains(t, text, "Doctor: Dr. Emily Davis\n")
	assert.Contains(t, text, "Date: March 12, 2026\n")
	assert.Contains(t, text, "Time: 10:30 AM\n")
	assert.Contains(t, text, "Type: In-Person Consultation\n")
	assert.Contains(t, text, "Fee: INR 1500\n")
	assert.True(t, strings.HasSuffix(text, "Bring valid ID and insurance card."))
}

func TestAppointmentWindowHandlesAfternoonSlots(t *testing.T) {
	t.Parallel()

	start, end, err := AppointmentWindow(sampleBookingRecord(t, 7))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 12, 14, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 30*time.Minute, end.Sub(start))
}

func TestAppointmentWindowRejectsMalformedSlot(t *testing.T) {
	t.Parallel()

	record := sampleBookingRecord(t, 1)
	record.Slot.Time = "noon"
	_, _, err := AppointmentWindow(record)
	assert.Error(t, err)
}

func TestBuildBookingLinks(t *testing.T) {
	t.Parallel()

	record := sampleBookingRecord(t, 12)
	links, err := BuildBookingLinks(record)
	require.NoError(t, err)

	parsed, err := url.Parse(links.CalendarURL)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", parsed.Host)
	query := parsed.Query()
	assert.Equal(t, "TEMPLATE", query.Get("action"))
	assert.Equal(t, "Appointment with Dr. Emily Davis", query.Get("text"))
	assert.Equal(t, "20260312T163000Z/20260312T170000Z", query.Get("dates"))
	assert.Contains(t, query.Get("details"), "Type: In-Person Consultation")

	assert.Equal(t, "https://maps.google.com/?q="+url.QueryEscape(record.Location), links.MapURL)
	assert.Equal(t, "appointment-confirmation-APT-1773133200000-AB12.txt", links.TextFile)
	assert.Equal(t, "appointment-confirmation-APT-1773133200000-AB12.pdf", links.PDFFile)
}

func TestBuildConfirmationPDF(t *testing.T) {
	t.Parallel()

	content, err := BuildConfirmationPDF(sampleBookingRecord(t, 1))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}
