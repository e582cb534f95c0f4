package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/security"
)

var (
	ErrPrescriptionNotFound      = errors.New("prescription not found")
	ErrRefillUnavailable         = errors.New("prescription has no refills available")
	ErrInvalidPrescriptionFilter = errors.New("invalid prescription filter")
)

const (
	FilterAll      = "all"
	DateLast30Days = "last-30-days"
	DateLast90Days = "last-90-days"
	refillIDPrefix = "RF-"
)

type PrescriptionFilter struct {
	Search string
	Status string
	Doctor string
	Date   string
}

type PrescriptionStats struct {
	Active           int `json:"active"`
	PendingRefills   int `json:"pending_refills"`
	Total            int `json:"total"`
	MonthlyCostCents int `json:"monthly_cost_cents"`
}

type RefillConfirmation struct {
	RequestID string               `json:"request_id"`
	Request   models.RefillRequest `json:"request"`
	Pharmacy  models.Pharmacy      `json:"pharmacy"`
}

type PrescriptionService struct {
	clock   clock.Clock
	latency time.Duration
}

func NewPrescriptionService(clk clock.Clock, latency time.Duration) *PrescriptionService {
	return &PrescriptionService{clock: clk, latency: latency}
}

func NormalizePrescriptionFilter(filter PrescriptionFilter) (PrescriptionFilter, error) {
	filter.Search = strings.ToLower(strings.TrimSpace(filter.Search))
	filter.Status = normalizeFilterValue(filter.Status)
	filter.Doctor = normalizeFilterValue(filter.Doctor)
	filter.Date = normalizeFilterValue(filter.Date)

	switch filter.Status {
	case FilterAll, models.PrescriptionActive, models.PrescriptionExpired, models.PrescriptionPending:
	default:
		return PrescriptionFilter{}, fmt.Errorf("%w: status %q", ErrInvalidPrescriptionFilter, filter.Status)
	}
	switch filter.Date {
	case FilterAll, DateLast30Days, DateLast90Days:
	default:
		return PrescriptionFilter{}, fmt.Errorf("%w: date %q", ErrInvalidPrescriptionFilter, filter.Date)
	}
	return filter, nil
}

func normalizeFilterValue(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return FilterAll
	}
	return value
}

func (service *PrescriptionService) List(filter PrescriptionFilter) ([]models.Prescription, error) {
	filter, err := NormalizePrescriptionFilter(filter)
	if err != nil {
		return nil, err
	}

	now := service.clock.Now()
	result := make([]models.Prescription, 0)
	for _, prescription := range models.Prescriptions() {
		if matchesPrescription(prescription, filter, now) {
			result = append(result, prescription)
		}
	}
	return result, nil
}

func matchesPrescription(prescription models.Prescription, filter PrescriptionFilter, now time.Time) bool {
	if filter.Search != "" &&
		!strings.Contains(strings.ToLower(prescription.MedicationName), filter.Search) &&
		!strings.Contains(strings.ToLower(prescription.DoctorName), filter.Search) &&
		!strings.Contains(strings.ToLower(prescription.Instructions), filter.Search) {
		return false
	}
	if filter.Status != FilterAll && prescription.Status != filter.Status {
		return false
	}
	if filter.Doctor != FilterAll {
		slug := strings.ReplaceAll(strings.ToLower(prescription.DoctorName), " ", "-")
		if !strings.Contains(slug, strings.TrimPrefix(filter.Doctor, "dr-")) {
			return false
		}
	}

	switch filter.Date {
	case DateLast30Days:
		return prescription.IssueDate.After(now.AddDate(0, 0, -30))
	case DateLast90Days:
		return prescription.IssueDate.After(now.AddDate(0, 0, -90))
	default:
		return true
	}
}

func (service *PrescriptionService) Stats() PrescriptionStats {
	stats := PrescriptionStats{}
	for _, prescription := range models.Prescriptions() {
		stats.Total++
		switch prescription.Status {
		case models.PrescriptionActive:
			stats.Active++
			stats.MonthlyCostCents += prescription.CostCents
		case models.PrescriptionPending:
			stats.PendingRefills++
		}
	}
	return stats
}

func (service *PrescriptionService) Find(id string) (models.Prescription, error) {
	for _, prescription := range models.Prescriptions() {
		if prescription.ID == id {
			return prescription, nil
		}
	}
	return models.Prescription{}, ErrPrescriptionNotFound
}

func ValidateRefillRequest(request models.RefillRequest) (models.Pharmacy, error) {
	errs := ValidationErrors{}
	pharmacy, found := findRefillPharmacy(request.PharmacyID)
	if !found {
		errs["pharmacy"] = "Please select a pharmacy"
	}
	switch request.DeliveryOption {
	case models.DeliveryPickup, models.DeliveryCurbside:
	case models.DeliveryHome:
		errs.requireText("delivery_address", request.DeliveryAddress, "Delivery address is required")
	default:
		errs["delivery_option"] = "Unknown delivery option"
	}
	return pharmacy, errs.orNil()
}

func findRefillPharmacy(id string) (models.Pharmacy, bool) {
	for _, pharmacy := range models.RefillPharmacies() {
		if pharmacy.ID == id {
			return pharmacy, true
		}
	}
	return models.Pharmacy{}, false
}

// RequestRefill validates the request and waits out the simulated pharmacy
// latency before confirming it.
func (service *PrescriptionService) RequestRefill(ctx context.Context, prescriptionID string, request models.RefillRequest) (RefillConfirmation, error) {
	prescription, err := service.Find(prescriptionID)
	if err != nil {
		return RefillConfirmation{}, err
	}
	if prescription.Status == models.PrescriptionExpired || prescription.RefillsRemaining <= 0 {
		return RefillConfirmation{}, ErrRefillUnavailable
	}

	request.PrescriptionID = prescription.ID
	request.PharmacyID = strings.TrimSpace(request.PharmacyID)
	request.DeliveryOption = strings.ToLower(strings.TrimSpace(request.DeliveryOption))
	if request.DeliveryOption == "" {
		request.DeliveryOption = models.DeliveryPickup
	}
	request.DeliveryAddress = strings.TrimSpace(request.DeliveryAddress)
	if request.DeliveryOption != models.DeliveryHome {
		request.DeliveryAddress = ""
	}

	pharmacy, err := ValidateRefillRequest(request)
	if err != nil {
		return RefillConfirmation{}, err
	}

	select {
	case <-service.clock.After(service.latency):
	case <-ctx.Done():
		return RefillConfirmation{}, ctx.Err()
	}

	requestID, err := security.ReferenceCode(refillIDPrefix, 8)
	if err != nil {
		return RefillConfirmation{}, fmt.Errorf("generate refill id: %w", err)
	}
	request.RequestedAt = service.clock.Now()
	return RefillConfirmation{
		RequestID: requestID,
		Request:   request,
		Pharmacy:  pharmacy,
	}, nil
}
