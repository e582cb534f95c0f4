package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

var (
	ErrIntakeNotFound  = errors.New("intake session not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrIntakeNoMatches = errors.New("intake has no symptoms or areas")
)

// intakeSession is one symptom-checker run. All fields are guarded by the
// owning IntakeService's mutex.
type intakeSession struct {
	id               string
	clientID         string
	symptoms         *SymptomModel
	areas            *AreaSelection
	stepper          *StepController
	advisory         AdvisoryTracker
	selectedDoctorID string
	touchedAt        time.Time
}

func newIntakeSession(id string, clientID string, now time.Time) *intakeSession {
	session := &intakeSession{
		id:        id,
		clientID:  clientID,
		symptoms:  NewSymptomModel(),
		areas:     NewAreaSelection(),
		touchedAt: now,
	}
	session.stepper = NewStepController(session.symptoms.Len, session.areas.Len)
	return session
}

func (session *intakeSession) reevaluate() {
	session.advisory.Evaluate(session.symptoms.Symptoms())
}

type IntakeSnapshot struct {
	ID               string            `json:"id"`
	Step             int               `json:"step"`
	Steps            []StepView        `json:"steps"`
	CanProceed       bool              `json:"can_proceed"`
	Symptoms         []models.Symptom  `json:"symptoms"`
	Areas            []string          `json:"areas"`
	Emergency        EmergencyAdvisory `json:"emergency"`
	SelectedDoctorID string            `json:"selected_doctor_id,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (session *intakeSession) snapshot() IntakeSnapshot {
	return IntakeSnapshot{
		ID:               session.id,
		Step:             session.stepper.Current(),
		Steps:            session.stepper.Steps(),
		CanProceed:       session.stepper.CanProceed(session.stepper.Current()),
		Symptoms:         session.symptoms.Symptoms(),
		Areas:            session.areas.Selected(),
		Emergency:        session.advisory.Advisory(),
		SelectedDoctorID: session.selectedDoctorID,
		UpdatedAt:        session.touchedAt,
	}
}

// IntakeService keeps symptom-checker sessions in memory, each owned by the
// anonymous client that created it.
type IntakeService struct {
	mu       sync.RWMutex
	sessions map[string]*intakeSession
	clock    clock.Clock
	newID    func() string
}

func NewIntakeService(clk clock.Clock) *IntakeService {
	return &IntakeService{
		sessions: make(map[string]*intakeSession),
		clock:    clk,
		newID:    uuid.NewString,
	}
}

func (service *IntakeService) Create(clientID string) IntakeSnapshot {
	service.mu.Lock()
	defer service.mu.Unlock()

	session := newIntakeSession(service.newID(), clientID, service.clock.Now())
	service.sessions[session.id] = session
	return session.snapshot()
}

func (service *IntakeService) Get(clientID string, id string) (IntakeSnapshot, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	session, err := service.lookupLocked(clientID, id)
	if err != nil {
		return IntakeSnapshot{}, err
	}
	return session.snapshot(), nil
}

func (service *IntakeService) Delete(clientID string, id string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if _, err := service.lookupLocked(clientID, id); err != nil {
		return err
	}
	delete(service.sessions, id)
	return nil
}

func (service *IntakeService) AddSymptom(clientID string, id string, name string) (IntakeSnapshot, error) {
	return service.mutate(clientID, id, func(session *intakeSession) error {
		_, _, err := session.symptoms.Add(name)
		return err
	})
}

func (service *IntakeService) UpdateSymptom(clientID string, id string, symptomID string, field string, value any) (IntakeSnapshot, error) {
	return service.mutate(clientID, id, func(session *intakeSession) error {
		_, err := session.symptoms.Update(symptomID, field, value)
		return err
	})
}

func (service *IntakeService) RemoveSymptom(clientID string, id string, symptomID string) (IntakeSnapshot, error) {
	return service.mutate(clientID, id, func(session *intakeSession) error {
		session.symptoms.Remove(symptomID)
		return nil
	})
}

func (service *IntakeService) ToggleArea(clientID string, id string, areaID string) (IntakeSnapshot, error) {
	return service.mutate(clientID, id, func(session *intakeSession) error {
		_, err := session.areas.Toggle(areaID)
		return err
	})
}

func (service *IntakeService) Advance(clientID string, id string) (IntakeSnapshot, error) {
	return service.mutate(clientID, id, func(session *intakeSession) error {
		session.stepper.Advance()
		return nil
	})
}

func (service *IntakeService) Retreat(clientID string, id string) (IntakeSnapshot, error) {
	return service.mutate(clientID, id, func(session *intakeSession) error {
		session.stepper.Retreat()
		return nil
	})
}

func (service *IntakeService) JumpTo(clientID string, id string, step int) (IntakeSnapshot, error) {
	return service.mutate(clientID, id, func(session *intakeSession) error {
		return session.stepper.JumpTo(step)
	})
}

// Reset rewinds to the first step and drops every symptom, area and doctor
// selection of the session.
func (service *IntakeService) Reset(clientID string, id string) (IntakeSnapshot, error) {
	return service.mutate(clientID, id, func(session *intakeSession) error {
		session.stepper.Reset()
		session.symptoms.Clear()
		session.areas.Clear()
		session.selectedDoctorID = ""
		session.advisory = AdvisoryTracker{}
		return nil
	})
}

func (service *IntakeService) DismissEmergency(clientID string, id string) (IntakeSnapshot, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, err := service.lookupLocked(clientID, id)
	if err != nil {
		return IntakeSnapshot{}, err
	}
	session.advisory.Dismiss()
	session.touchedAt = service.clock.Now()
	return session.snapshot(), nil
}

func (service *IntakeService) Recommendations(clientID string, id string) ([]models.DoctorRecord, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	session, err := service.lookupLocked(clientID, id)
	if err != nil {
		return nil, err
	}
	return MatchDoctors(session.symptoms.Symptoms(), session.areas.Selected()), nil
}

// SelectDoctor records the doctor chosen from the session's recommendations
// and returns it for the booking hand-off.
func (service *IntakeService) SelectDoctor(clientID string, id string, doctorID string) (models.DoctorRecord, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, err := service.lookupLocked(clientID, id)
	if err != nil {
		return models.DoctorRecord{}, err
	}

	recommended := MatchDoctors(session.symptoms.Symptoms(), session.areas.Selected())
	if len(recommended) == 0 {
		return models.DoctorRecord{}, ErrIntakeNoMatches
	}
	for _, doctor := range recommended {
		if doctor.ID == doctorID {
			session.selectedDoctorID = doctor.ID
			session.touchedAt = service.clock.Now()
			return doctor, nil
		}
	}
	return models.DoctorRecord{}, ErrDoctorNotFound
}

// PurgeIdle drops sessions untouched for longer than maxIdle and reports how
// many were removed.
func (service *IntakeService) PurgeIdle(maxIdle time.Duration) int {
	service.mu.Lock()
	defer service.mu.Unlock()

	threshold := service.clock.Now().Add(-maxIdle)
	removed := 0
	for id, session := range service.sessions {
		if session.touchedAt.Before(threshold) {
			delete(service.sessions, id)
			removed++
		}
	}
	return removed
}

func (service *IntakeService) Len() int {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return len(service.sessions)
}

func (service *IntakeService) mutate(clientID string, id string, apply func(*intakeSession) error) (IntakeSnapshot, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, err := service.lookupLocked(clientID, id)
	if err != nil {
		return IntakeSnapshot{}, err
	}
	if err := apply(session); err != nil {
		return IntakeSnapshot{}, err
	}
	session.reevaluate()
	session.touchedAt = service.clock.Now()
	return session.snapshot(), nil
}

// lookupLocked hides sessions of other clients behind ErrIntakeNotFound.
func (service *IntakeService) lookupLocked(clientID string, id string) (*intakeSession, error) {
	session, ok := service.sessions[id]
	if !ok || session.clientID != clientID {
		return nil, ErrIntakeNotFound
	}
	return session, nil
}
