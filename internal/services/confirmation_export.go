package services

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

const (
	slotTimeLayout        = "03:04 PM"
	calendarStampLayout   = "20060102T150405Z"
	confirmationDateStyle = "January 2, 2006"
	calendarTemplateURL   = "https://calendar.google.com/calendar/render"
	mapSearchURL          = "https://maps.google.com/"
)

var confirmationReminders = []string{
	"Please arrive 15 minutes early.",
	"Bring valid ID and insurance card.",
}

type BookingLinks struct {
	CalendarURL string `json:"calendar_url"`
	MapURL      string `json:"map_url"`
	TextFile    string `json:"text_file"`
	PDFFile     string `json:"pdf_file"`
}

func ConfirmationFileName(record models.BookingRecord, extension string) string {
	return "appointment-confirmation-" + record.ID + "." + extension
}

func confirmationLines(record models.BookingRecord) [][2]string {
	return [][2]string{
		{"Appointment ID", record.ID},
		{"Patient", record.Patient.Name},
		{"Doctor", record.Doctor.Name},
		{"Date", record.Date.Format(confirmationDateStyle)},
		{"Time", record.Slot.Time},
		{"Type", record.AppointmentType.Name},
		{"Location", record.Location},
		{"Fee", fmt.Sprintf("INR %d", record.Fee)},
	}
}

// BuildConfirmationText renders the downloadable plain-text confirmation.
func BuildConfirmationText(record models.BookingRecord) string {
	var builder strings.Builder
	builder.WriteString("APPOINTMENT CONFIRMATION\n")
	builder.WriteString("========================\n\n")
	for _, line := range confirmationLines(record) {
		builder.WriteString(line[0] + ": " + line[1] + "\n")
	}
	builder.WriteString("\n")
	builder.WriteString(strings.Join(confirmationReminders, "\n"))
	return builder.String()
}

func BuildConfirmationPDF(record models.BookingRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Appointment confirmation "+record.ID, true)
	pdf.SetCreator("HospitalConnect", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Appointment Confirmation", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, line := range confirmationLines(record) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 8, translate(line[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, translate(line[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, strings.Join(confirmationReminders, "\n"), "", "L", false)

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("render confirmation pdf: %w", err)
	}
	return buffer.Bytes(), nil
}

// AppointmentWindow returns the appointment start and end in the booking's
// date location.
func AppointmentWindow(record models.BookingRecord) (time.Time, time.Time, error) {
	slotTime, err := time.Parse(slotTimeLayout, record.Slot.Time)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse slot time %q: %w", record.Slot.Time, err)
	}
	year, month, day := record.Date.Date()
	start := time.Date(year, month, day, slotTime.Hour(), slotTime.Minute(), 0, 0, record.Date.Location())
	return start, start.Add(time.Duration(record.DurationMinutes) * time.Minute), nil
}

func CalendarTemplateURL(record models.BookingRecord) (string, error) {
	start, end, err := AppointmentWindow(record)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("action", "TEMPLATE")
	query.Set("text", "Appointment with "+record.Doctor.Name)
	query.Set("dates", start.UTC().Format(calendarStampLayout)+"/"+end.UTC().Format(calendarStampLayout))
	query.Set("details", fmt.Sprintf("Consultation with %s\nType: %s\nLocation: %s",
		record.Doctor.Name, record.AppointmentType.Name, record.Location))
	return calendarTemplateURL + "?" + query.Encode(), nil
}

func MapSearchURL(place string) string {
	return mapSearchURL + "?q=" + url.QueryEscape(place)
}

func BuildBookingLinks(record models.BookingRecord) (BookingLinks, error) {
	calendarURL, err := CalendarTemplateURL(record)
	if err != nil {
		return BookingLinks{}, err
	}
	return BookingLinks{
		CalendarURL: calendarURL,
		MapURL:      MapSearchURL(record.Location),
		TextFile:    ConfirmationFileName(record, "txt"),
		PDFFile:     ConfirmationFileName(record, "pdf"),
	}, nil
}
