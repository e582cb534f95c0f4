package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/security"
)

var (
	ErrDraftLoadFailed   = errors.New("load registration draft failed")
	ErrDraftSaveFailed   = errors.New("save registration draft failed")
	ErrDraftDeleteFailed = errors.New("delete registration draft failed")
)

const (
	DefaultDraftDebounce       = time.Second
	DefaultRegistrationLatency = 2 * time.Second

	registrationDraftPurpose = "registration-draft"
	patientIDPrefix          = "HC-2024-"
)

type RegistrationDraftRepository interface {
	FindByClient(clientID string) (models.RegistrationDraft, bool, error)
	Upsert(draft *models.RegistrationDraft) error
	DeleteByClient(clientID string) error
	DeleteUpdatedBefore(cutoff time.Time) (int64, error)
}

// Sealer encrypts values at rest, binding each to a purpose.
type Sealer interface {
	Seal(purpose string, plaintext []byte) (string, error)
	Open(purpose string, sealed string) ([]byte, error)
}

type pendingDraft struct {
	form models.RegistrationForm
	stop chan struct{}
}

// RegistrationService owns registration drafts. Changes are written after
// the debounce interval has passed without a newer change.
type RegistrationService struct {
	drafts   RegistrationDraftRepository
	sealer   Sealer
	clock    clock.Clock
	debounce time.Duration
	latency  time.Duration
	onError  func(clientID string, err error)

	mu      sync.Mutex
	pending map[string]*pendingDraft
	saving  map[string]*pendingDraft
	saves   sync.WaitGroup

	// writeMu orders draft writes against discards.
	writeMu sync.Mutex
}

type RegistrationOption func(*RegistrationService)

func WithDraftDebounce(debounce time.Duration) RegistrationOption {
	return func(service *RegistrationService) {
		service.debounce = debounce
	}
}

func WithRegistrationLatency(latency time.Duration) RegistrationOption {
	return func(service *RegistrationService) {
		service.latency = latency
	}
}

// WithDraftErrorHandler receives failures of debounced saves, which have no
// caller to return to.
func WithDraftErrorHandler(handler func(clientID string, err error)) RegistrationOption {
	return func(service *RegistrationService) {
		service.onError = handler
	}
}

func NewRegistrationService(drafts RegistrationDraftRepository, sealer Sealer, clk clock.Clock, options ...RegistrationOption) *RegistrationService {
	service := &RegistrationService{
		drafts:   drafts,
		sealer:   sealer,
		clock:    clk,
		debounce: DefaultDraftDebounce,
		latency:  DefaultRegistrationLatency,
		onError:  func(string, error) {},
		pending:  make(map[string]*pendingDraft),
		saving:   make(map[string]*pendingDraft),
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// LoadDraft returns the newest form of the client: a queued change, else the
// stored draft, else a blank form. Stored drafts of another schema version or
// that no longer open are discarded.
func (service *RegistrationService) LoadDraft(clientID string) (models.RegistrationForm, error) {
	service.mu.Lock()
	if pending, ok := service.pending[clientID]; ok {
		form := pending.form
		service.mu.Unlock()
		return form, nil
	}
	service.mu.Unlock()

	draft, found, err := service.drafts.FindByClient(clientID)
	if err != nil {
		return models.RegistrationForm{}, fmt.Errorf("%w: %v", ErrDraftLoadFailed, err)
	}
	if !found {
		return models.NewRegistrationForm(), nil
	}

	form, ok := service.openDraft(draft)
	if !ok {
		if err := service.drafts.DeleteByClient(clientID); err != nil {
			return models.RegistrationForm{}, fmt.Errorf("%w: %v", ErrDraftDeleteFailed, err)
		}
		return models.NewRegistrationForm(), nil
	}
	return form, nil
}

func (service *RegistrationService) openDraft(draft models.RegistrationDraft) (models.RegistrationForm, bool) {
	if draft.SchemaVersion != models.RegistrationDraftSchemaVersion {
		return models.RegistrationForm{}, false
	}
	payload, err := service.sealer.Open(registrationDraftPurpose, draft.Payload)
	if err != nil {
		return models.RegistrationForm{}, false
	}
	form := models.RegistrationForm{}
	if err := json.Unmarshal(payload, &form); err != nil {
		return models.RegistrationForm{}, false
	}
	return NormalizeRegistrationForm(form), true
}

// QueueDraft replaces any queued change of the client and re-arms the
// debounce timer.
func (service *RegistrationService) QueueDraft(clientID string, form models.RegistrationForm) models.RegistrationForm {
	form = NormalizeRegistrationForm(form)
	next := &pendingDraft{form: form, stop: make(chan struct{})}

	service.mu.Lock()
	if previous, ok := service.pending[clientID]; ok {
		close(previous.stop)
	}
	service.pending[clientID] = next
	timer := service.clock.After(service.debounce)
	service.saves.Add(1)
	service.mu.Unlock()

	go service.awaitDebounce(clientID, next, timer)
	return form
}

func (service *RegistrationService) awaitDebounce(clientID string, pending *pendingDraft, timer <-chan time.Time) {
	defer service.saves.Done()
	select {
	case <-pending.stop:
		return
	case <-timer:
	}

	service.mu.Lock()
	if service.pending[clientID] != pending {
		service.mu.Unlock()
		return
	}
	delete(service.pending, clientID)
	service.saving[clientID] = pending
	service.mu.Unlock()

	if err := service.saveQueued(clientID, pending); err != nil {
		service.onError(clientID, err)
	}
}

// saveQueued writes a debounced change unless a discard superseded it after
// it left the queue.
func (service *RegistrationService) saveQueued(clientID string, pending *pendingDraft) error {
	service.writeMu.Lock()
	defer service.writeMu.Unlock()

	service.mu.Lock()
	current := service.saving[clientID] == pending
	if current {
		delete(service.saving, clientID)
	}
	service.mu.Unlock()
	if !current {
		return nil
	}
	return service.writeDraft(clientID, pending.form)
}

// SaveDraft writes form immediately, bypassing the debounce.
func (service *RegistrationService) SaveDraft(clientID string, form models.RegistrationForm) error {
	service.writeMu.Lock()
	defer service.writeMu.Unlock()
	return service.writeDraft(clientID, form)
}

func (service *RegistrationService) writeDraft(clientID string, form models.RegistrationForm) error {
	payload, err := json.Marshal(NormalizeRegistrationForm(form))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDraftSaveFailed, err)
	}
	sealed, err := service.sealer.Seal(registrationDraftPurpose, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDraftSaveFailed, err)
	}

	draft := models.RegistrationDraft{
		ClientID:      clientID,
		SchemaVersion: models.RegistrationDraftSchemaVersion,
		Payload:       sealed,
		UpdatedAt:     service.clock.Now(),
	}
	if err := service.drafts.Upsert(&draft); err != nil {
		return fmt.Errorf("%w: %v", ErrDraftSaveFailed, err)
	}
	return nil
}

// DiscardDraft drops both the queued change and the stored draft.
func (service *RegistrationService) DiscardDraft(clientID string) error {
	service.writeMu.Lock()
	defer service.writeMu.Unlock()

	service.cancelPending(clientID)
	if err := service.drafts.DeleteByClient(clientID); err != nil {
		return fmt.Errorf("%w: %v", ErrDraftDeleteFailed, err)
	}
	return nil
}

func (service *RegistrationService) cancelPending(clientID string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	if pending, ok := service.pending[clientID]; ok {
		close(pending.stop)
		delete(service.pending, clientID)
	}
	delete(service.saving, clientID)
}

type SectionResult struct {
	Section           string           `json:"section"`
	Valid             bool             `json:"valid"`
	Errors            ValidationErrors `json:"errors"`
	CompletedSections []string         `json:"completed_sections"`
}

// CompleteSection validates one section and, when it passes, records it as
// completed in the queued draft.
func (service *RegistrationService) CompleteSection(clientID string, section string, form models.RegistrationForm) (SectionResult, error) {
	form = NormalizeRegistrationForm(form)
	errs, err := ValidateRegistrationSection(form, section)
	if err != nil {
		return SectionResult{}, err
	}

	result := SectionResult{Section: section, Valid: len(errs) == 0, Errors: errs}
	if result.Valid {
		form.CompletedSections = MarkSectionCompleted(form.CompletedSections, section)
	}
	form = service.QueueDraft(clientID, form)
	result.CompletedSections = form.CompletedSections
	return result, nil
}

type RegistrationResult struct {
	PatientID    string    `json:"patient_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Submit validates the whole form, waits out the simulated latency and
// issues a patient id. The stored draft is removed on success.
func (service *RegistrationService) Submit(ctx context.Context, clientID string, form models.RegistrationForm) (RegistrationResult, error) {
	form = NormalizeRegistrationForm(form)
	if errs := ValidateRegistrationSubmission(form); len(errs) > 0 {
		return RegistrationResult{}, errs
	}

	select {
	case <-service.clock.After(service.latency):
	case <-ctx.Done():
		return RegistrationResult{}, ctx.Err()
	}

	digits, err := security.RandomString(3, security.DigitAlphabet)
	if err != nil {
		return RegistrationResult{}, fmt.Errorf("generate patient id: %w", err)
	}
	if err := service.DiscardDraft(clientID); err != nil {
		return RegistrationResult{}, err
	}

	return RegistrationResult{
		PatientID:    patientIDPrefix + digits,
		Name:         form.FirstName + " " + form.LastName,
		Email:        form.Email,
		RegisteredAt: service.clock.Now(),
	}, nil
}

// Close writes every queued change right away and stops the debounce timers.
func (service *RegistrationService) Close() {
	service.mu.Lock()
	flushed := make(map[string]models.RegistrationForm, len(service.pending))
	for clientID, pending := range service.pending {
		close(pending.stop)
		flushed[clientID] = pending.form
		delete(service.pending, clientID)
	}
	service.mu.Unlock()
	service.saves.Wait()

	for clientID, form := range flushed {
		if err := service.SaveDraft(clientID, form); err != nil {
			service.onError(clientID, err)
		}
	}
}

func (service *RegistrationService) PurgeStale(maxAge time.Duration) (int64, error) {
	return service.drafts.DeleteUpdatedBefore(service.clock.Now().Add(-maxAge))
}
