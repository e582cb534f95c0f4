package db

import (
	"time"

	"github.com/terraincognita07/hospitalconnect/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var clientIDConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "client_id"}},
	UpdateAll: true,
}

type RegistrationDraftRepository struct {
	database *gorm.DB
}

func NewRegistrationDraftRepository(database *gorm.DB) *RegistrationDraftRepository {
	return &RegistrationDraftRepository{database: database}
}

func (repo *RegistrationDraftRepository) FindByClient(clientID string) (models.RegistrationDraft, bool, error) {
	draft := models.RegistrationDraft{}
	result := repo.database.Where("client_id = ?", clientID).Limit(1).Find(&draft)
	if result.Error != nil {
		return models.RegistrationDraft{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.RegistrationDraft{}, false, nil
	}
	return draft, true, nil
}

// Upsert keeps one draft per client; the newest write wins.
func (repo *RegistrationDraftRepository) Upsert(draft *models.RegistrationDraft) error {
	return repo.database.Clauses(clientIDConflict).Create(draft).Error
}

func (repo *RegistrationDraftRepository) DeleteByClient(clientID string) error {
	return repo.database.Where("client_id = ?", clientID).Delete(&models.RegistrationDraft{}).Error
}

func (repo *RegistrationDraftRepository) DeleteUpdatedBefore(cutoff time.Time) (int64, error) {
	result := repo.database.Where("updated_at < ?", cutoff).Delete(&models.RegistrationDraft{})
	return result.RowsAffected, result.Error
}

type HandoffRepository struct {
	database *gorm.DB
}

func NewHandoffRepository(database *gorm.DB) *HandoffRepository {
	return &HandoffRepository{database: database}
}

func (repo *HandoffRepository) FindByClient(clientID string) (models.DoctorHandoff, bool, error) {
	handoff := models.DoctorHandoff{}
	result := repo.database.Where("client_id = ?", clientID).Limit(1).Find(&handoff)
	if result.Error != nil {
		return models.DoctorHandoff{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DoctorHandoff{}, false, nil
	}
	return handoff, true, nil
}

func (repo *HandoffRepository) Upsert(handoff *models.DoctorHandoff) error {
	return repo.database.Clauses(clientIDConflict).Create(handoff).Error
}

func (repo *HandoffRepository) DeleteUpdatedBefore(cutoff time.Time) (int64, error) {
	result := repo.database.Where("updated_at < ?", cutoff).Delete(&models.DoctorHandoff{})
	return result.RowsAffected, result.Error
}
