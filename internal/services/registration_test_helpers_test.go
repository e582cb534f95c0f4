package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/hospitalconnect/internal/models"
)

type stubDraftRepo struct {
	mu      sync.Mutex
	drafts  map[string]models.RegistrationDraft
	upserts int
	saveErr error

	// upsertGate, when set, holds every Upsert until it is closed;
	// upsertStarted receives once per held Upsert.
	upsertGate    chan struct{}
	upsertStarted chan struct{}
}

func newStubDraftRepo() *stubDraftRepo {
	return &stubDraftRepo{drafts: make(map[string]models.RegistrationDraft)}
}

func (repo *stubDraftRepo) FindByClient(clientID string) (models.RegistrationDraft, bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	draft, ok := repo.drafts[clientID]
	return draft, ok, nil
}

func (repo *stubDraftRepo) Upsert(draft *models.RegistrationDraft) error {
	if repo.upsertGate != nil {
		repo.upsertStarted <- struct{}{}
		<-repo.upsertGate
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.saveErr != nil {
		return repo.saveErr
	}
	repo.upserts++
	repo.drafts[draft.ClientID] = *draft
	return nil
}

func (repo *stubDraftRepo) DeleteByClient(clientID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.drafts, clientID)
	return nil
}

func (repo *stubDraftRepo) DeleteUpdatedBefore(cutoff time.Time) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var deleted int64
	for clientID, draft := range repo.drafts {
		if draft.UpdatedAt.Before(cutoff) {
			delete(repo.drafts, clientID)
			deleted++
		}
	}
	return deleted, nil
}

func (repo *stubDraftRepo) stored(clientID string) (models.RegistrationDraft, bool) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	draft, ok := repo.drafts[clientID]
	return draft, ok
}

func (repo *stubDraftRepo) upsertCount() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.upserts
}

// prefixSealer binds the purpose without encrypting so tests can inspect
// stored payloads.
type prefixSealer struct{}

func (prefixSealer) Seal(purpose string, plaintext []byte) (string, error) {
	return purpose + "|" + string(plaintext), nil
}

func (prefixSealer) Open(purpose string, sealed string) ([]byte, error) {
	payload, ok := strings.CutPrefix(sealed, purpose+"|")
	if !ok {
		return nil, errors.New("purpose mismatch")
	}
	return []byte(payload), nil
}
