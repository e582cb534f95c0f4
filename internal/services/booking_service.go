package services

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/security"
)

var (
	ErrBookingFlowNotFound    = errors.New("booking flow not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingLoadFailed      = errors.New("load booking failed")
	ErrUnknownAppointmentType = errors.New("unknown appointment type")
	ErrUnknownTimeSlot        = errors.New("unknown time slot")
	ErrTimeSlotUnavailable    = errors.New("time slot unavailable")
	ErrBookingDateInPast      = errors.New("booking date is in the past")
	ErrBookingDateRequired    = errors.New("select a date first")
	ErrBookingIncomplete      = errors.New("doctor, appointment type, date and time slot are required")
	ErrSubmissionInProgress   = errors.New("submission already in progress")
	ErrBookingConfirmed       = errors.New("booking already confirmed")
	ErrBookingNotConfirmed    = errors.New("booking is not confirmed")
)

type BookingState string

const (
	BookingIdle       BookingState = "idle"
	BookingSubmitting BookingState = "submitting"
	BookingConfirmed  BookingState = "confirmed"
	BookingFailed     BookingState = "failed"
)

const (
	BookingStepType     = 1
	BookingStepSchedule = 2
	BookingStepDetails  = 3

	DefaultSubmissionDelay = 2 * time.Second

	bookingIDPrefix       = "APT-"
	bookingFailureMessage = "Failed to book appointment. Please try again."
)

type BookingRepository interface {
	Create(record *models.BookingRecord) error
	FindByIDForClient(clientID string, id string) (models.BookingRecord, bool, error)
	DeleteByIDForClient(clientID string, id string) error
	DeleteCreatedBefore(cutoff time.Time) (int64, error)
}

// bookingFlow holds the selections of one appointment-booking page. Fields
// are guarded by mu because submissions settle on their own goroutine.
type bookingFlow struct {
	mu        sync.Mutex
	id        string
	clientID  string
	doctor    models.DoctorRecord
	typeID    string
	date      time.Time
	slotID    int
	details   models.BookingDetails
	step      int
	state     BookingState
	record    *models.BookingRecord
	failure   string
	task      *SubmissionTask
	touchedAt time.Time
}

type BookingSnapshot struct {
	ID              string                  `json:"id"`
	Step            int                     `json:"step"`
	State           BookingState            `json:"state"`
	Doctor          models.DoctorRecord     `json:"doctor"`
	AppointmentType *models.AppointmentType `json:"appointment_type,omitempty"`
	Date            string                  `json:"date,omitempty"`
	Slot            *models.TimeSlot        `json:"slot,omitempty"`
	Details         models.BookingDetails   `json:"details"`
	Booking         *models.BookingRecord   `json:"booking,omitempty"`
	Error           string                  `json:"error,omitempty"`
}

func (flow *bookingFlow) snapshotLocked() BookingSnapshot {
	snapshot := BookingSnapshot{
		ID:      flow.id,
		Step:    flow.step,
		State:   flow.state,
		Doctor:  flow.doctor,
		Details: flow.details,
		Error:   flow.failure,
	}
	if appointmentType, ok := models.FindAppointmentType(flow.typeID); ok {
		snapshot.AppointmentType = &appointmentType
	}
	if !flow.date.IsZero() {
		snapshot.Date = flow.date.Format(dateLayout)
	}
	if slot, ok := models.FindTimeSlot(flow.slotID); ok {
		snapshot.Slot = &slot
	}
	if flow.record != nil {
		record := *flow.record
		snapshot.Booking = &record
	}
	return snapshot
}

func (flow *bookingFlow) complete() bool {
	return flow.doctor.ID != "" && flow.typeID != "" && !flow.date.IsZero() && flow.slotID != 0
}

// BookingService runs the appointment-booking flows of every client and
// persists confirmed bookings.
type BookingService struct {
	mu          sync.RWMutex
	flows       map[string]*bookingFlow
	bookings    BookingRepository
	clock       clock.Clock
	location    *time.Location
	submitDelay time.Duration
	newID       func() string
}

func NewBookingService(bookings BookingRepository, clk clock.Clock, location *time.Location, submitDelay time.Duration) *BookingService {
	if location == nil {
		location = time.UTC
	}
	if submitDelay < 0 {
		submitDelay = DefaultSubmissionDelay
	}
	return &BookingService{
		flows:       make(map[string]*bookingFlow),
		bookings:    bookings,
		clock:       clk,
		location:    location,
		submitDelay: submitDelay,
		newID:       uuid.NewString,
	}
}

func (service *BookingService) Start(clientID string, doctor models.DoctorRecord) BookingSnapshot {
	flow := &bookingFlow{
		id:        service.newID(),
		clientID:  clientID,
		doctor:    doctor,
		step:      BookingStepType,
		state:     BookingIdle,
		touchedAt: service.clock.Now(),
	}

	service.mu.Lock()
	service.flows[flow.id] = flow
	service.mu.Unlock()

	flow.mu.Lock()
	defer flow.mu.Unlock()
	return flow.snapshotLocked()
}

func (service *BookingService) Get(clientID string, flowID string) (BookingSnapshot, error) {
	flow, err := service.lookup(clientID, flowID)
	if err != nil {
		return BookingSnapshot{}, err
	}
	flow.mu.Lock()
	defer flow.mu.Unlock()
	return flow.snapshotLocked(), nil
}

// Close drops the flow. An in-flight submission is cancelled and its result
// discarded.
func (service *BookingService) Close(clientID string, flowID string) error {
	service.mu.Lock()
	flow, ok := service.flows[flowID]
	if !ok || flow.clientID != clientID {
		service.mu.Unlock()
		return ErrBookingFlowNotFound
	}
	delete(service.flows, flowID)
	service.mu.Unlock()

	flow.mu.Lock()
	defer flow.mu.Unlock()
	if flow.task != nil {
		flow.task.Cancel()
	}
	return nil
}

func (service *BookingService) SelectType(clientID string, flowID string, typeID string) (BookingSnapshot, error) {
	return service.mutate(clientID, flowID, func(flow *bookingFlow) error {
		if _, ok := models.FindAppointmentType(typeID); !ok {
			return ErrUnknownAppointmentType
		}
		flow.typeID = typeID
		flow.step = BookingStepSchedule
		return nil
	})
}

// SelectDate picks the appointment day and clears any previously picked slot.
func (service *BookingService) SelectDate(clientID string, flowID string, rawDate string) (BookingSnapshot, error) {
	day, err := time.ParseInLocation(dateLayout, rawDate, service.location)
	if err != nil {
		return BookingSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	today := DateAtLocation(service.clock.Now(), service.location)
	if day.Before(today) {
		return BookingSnapshot{}, ErrBookingDateInPast
	}

	return service.mutate(clientID, flowID, func(flow *bookingFlow) error {
		flow.date = day
		flow.slotID = 0
		flow.step = BookingStepSchedule
		return nil
	})
}

func (service *BookingService) SelectSlot(clientID string, flowID string, slotID int) (BookingSnapshot, error) {
	slot, ok := models.FindTimeSlot(slotID)
	if !ok {
		return BookingSnapshot{}, ErrUnknownTimeSlot
	}
	if !slot.Available {
		return BookingSnapshot{}, ErrTimeSlotUnavailable
	}

	return service.mutate(clientID, flowID, func(flow *bookingFlow) error {
		if flow.date.IsZero() {
			return ErrBookingDateRequired
		}
		flow.slotID = slot.ID
		flow.step = BookingStepDetails
		return nil
	})
}

// Submit validates the details and starts the simulated submission. The
// delay timer is armed before Submit returns.
func (service *BookingService) Submit(clientID string, flowID string, details models.BookingDetails) (*SubmissionTask, error) {
	flow, err := service.lookup(clientID, flowID)
	if err != nil {
		return nil, err
	}

	flow.mu.Lock()
	defer flow.mu.Unlock()

	switch flow.state {
	case BookingSubmitting:
		return nil, ErrSubmissionInProgress
	case BookingConfirmed:
		return nil, ErrBookingConfirmed
	}
	if !flow.complete() {
		return nil, ErrBookingIncomplete
	}

	details = NormalizeBookingDetails(details)
	flow.details = details
	if err := ValidateBookingDetails(details); err != nil {
		return nil, err
	}

	task := newSubmissionTask()
	flow.task = task
	flow.state = BookingSubmitting
	flow.failure = ""
	flow.touchedAt = service.clock.Now()

	timer := service.clock.After(service.submitDelay)
	go service.settle(flow, task, timer)
	return task, nil
}

func (service *BookingService) settle(flow *bookingFlow, task *SubmissionTask, timer <-chan time.Time) {
	select {
	case <-timer:
	case <-task.ctx.Done():
	}

	flow.mu.Lock()
	defer flow.mu.Unlock()

	if task.cancelled() || flow.task != task {
		if flow.task == task {
			flow.task = nil
			flow.state = BookingIdle
		}
		task.settle(models.BookingRecord{}, ErrSubmissionCancelled)
		return
	}
	flow.task = nil

	record, err := service.buildRecordLocked(flow)
	if err == nil {
		err = service.bookings.Create(&record)
	}
	if err != nil {
		flow.state = BookingFailed
		flow.failure = bookingFailureMessage
		task.settle(models.BookingRecord{}, fmt.Errorf("create booking: %w", err))
		return
	}

	flow.record = &record
	flow.state = BookingConfirmed
	flow.touchedAt = service.clock.Now()
	task.settle(record, nil)
}

func (service *BookingService) buildRecordLocked(flow *bookingFlow) (models.BookingRecord, error) {
	appointmentType, ok := models.FindAppointmentType(flow.typeID)
	if !ok {
		return models.BookingRecord{}, ErrUnknownAppointmentType
	}
	slot, ok := models.FindTimeSlot(flow.slotID)
	if !ok {
		return models.BookingRecord{}, ErrUnknownTimeSlot
	}

	now := service.clock.Now()
	id, err := NewBookingID(now)
	if err != nil {
		return models.BookingRecord{}, err
	}
	return models.BookingRecord{
		ID:              id,
		ClientID:        flow.clientID,
		Patient:         models.DefaultPatient(),
		Doctor:          flow.doctor,
		Date:            flow.date,
		Slot:            slot,
		AppointmentType: appointmentType,
		Fee:             appointmentType.Fee,
		DurationMinutes: appointmentType.DurationMinutes,
		Location:        flow.doctor.Location,
		Details:         flow.details,
		CreatedAt:       now,
	}, nil
}

// Reschedule discards the confirmed booking and sends the flow back to date
// selection, keeping the doctor and appointment type.
func (service *BookingService) Reschedule(clientID string, flowID string) (BookingSnapshot, error) {
	flow, err := service.lookup(clientID, flowID)
	if err != nil {
		return BookingSnapshot{}, err
	}

	flow.mu.Lock()
	defer flow.mu.Unlock()
	if flow.state != BookingConfirmed || flow.record == nil {
		return BookingSnapshot{}, ErrBookingNotConfirmed
	}
	if err := service.bookings.DeleteByIDForClient(clientID, flow.record.ID); err != nil {
		return BookingSnapshot{}, fmt.Errorf("discard booking: %w", err)
	}

	flow.record = nil
	flow.date = time.Time{}
	flow.slotID = 0
	flow.state = BookingIdle
	flow.failure = ""
	flow.step = BookingStepSchedule
	flow.touchedAt = service.clock.Now()
	return flow.snapshotLocked(), nil
}

func (service *BookingService) FindBooking(clientID string, bookingID string) (models.BookingRecord, error) {
	record, found, err := service.bookings.FindByIDForClient(clientID, bookingID)
	if err != nil {
		return models.BookingRecord{}, fmt.Errorf("%w: %v", ErrBookingLoadFailed, err)
	}
	if !found {
		return models.BookingRecord{}, ErrBookingNotFound
	}
	return record, nil
}

// ConfirmedBooking returns the record of a confirmed flow.
func (service *BookingService) ConfirmedBooking(clientID string, flowID string) (models.BookingRecord, error) {
	flow, err := service.lookup(clientID, flowID)
	if err != nil {
		return models.BookingRecord{}, err
	}
	flow.mu.Lock()
	defer flow.mu.Unlock()
	if flow.record == nil {
		return models.BookingRecord{}, ErrBookingNotConfirmed
	}
	return *flow.record, nil
}

// PurgeIdle drops flows untouched for maxIdle, cancelling their submissions,
// and deletes stored bookings created before retention ago.
func (service *BookingService) PurgeIdle(maxIdle time.Duration, retention time.Duration) (int, int64, error) {
	now := service.clock.Now()
	threshold := now.Add(-maxIdle)

	service.mu.Lock()
	stale := make([]*bookingFlow, 0)
	for id, flow := range service.flows {
		flow.mu.Lock()
		idle := flow.touchedAt.Before(threshold) && flow.state != BookingSubmitting
		flow.mu.Unlock()
		if idle {
			stale = append(stale, flow)
			delete(service.flows, id)
		}
	}
	service.mu.Unlock()

	for _, flow := range stale {
		flow.mu.Lock()
		if flow.task != nil {
			flow.task.Cancel()
		}
		flow.mu.Unlock()
	}

	if retention <= 0 {
		return len(stale), 0, nil
	}
	deleted, err := service.bookings.DeleteCreatedBefore(now.Add(-retention))
	return len(stale), deleted, err
}

func (service *BookingService) mutate(clientID string, flowID string, apply func(*bookingFlow) error) (BookingSnapshot, error) {
	flow, err := service.lookup(clientID, flowID)
	if err != nil {
		return BookingSnapshot{}, err
	}

	flow.mu.Lock()
	defer flow.mu.Unlock()
	switch flow.state {
	case BookingSubmitting:
		return BookingSnapshot{}, ErrSubmissionInProgress
	case BookingConfirmed:
		return BookingSnapshot{}, ErrBookingConfirmed
	}
	if err := apply(flow); err != nil {
		return BookingSnapshot{}, err
	}
	flow.touchedAt = service.clock.Now()
	return flow.snapshotLocked(), nil
}

func (service *BookingService) lookup(clientID string, flowID string) (*bookingFlow, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	flow, ok := service.flows[flowID]
	if !ok || flow.clientID != clientID {
		return nil, ErrBookingFlowNotFound
	}
	return flow, nil
}

// NewBookingID combines the fixed prefix with the submission time in
// milliseconds and a short random suffix so two submissions within the same
// millisecond still differ.
func NewBookingID(now time.Time) (string, error) {
	id, err := security.ReferenceCode(bookingIDPrefix+strconv.FormatInt(now.UnixMilli(), 10)+"-", 4)
	if err != nil {
		return "", fmt.Errorf("generate booking id: %w", err)
	}
	return id, nil
}
