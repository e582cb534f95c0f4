package db

import (
	"time"

	"github.com/terraincognita07/hospitalconnect/internal/models"
	"gorm.io/gorm"
)

type BookingRepository struct {
	database *gorm.DB
}

func NewBookingRepository(database *gorm.DB) *BookingRepository {
	return &BookingRepository{database: database}
}

func (repo *BookingRepository) Create(record *models.BookingRecord) error {
	return repo.database.Create(record).Error
}

func (repo *BookingRepository) FindByIDForClient(clientID string, id string) (models.BookingRecord, bool, error) {
	record := models.BookingRecord{}
	result := repo.database.
		Where("id = ? AND client_id = ?", id, clientID).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.BookingRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.BookingRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *BookingRepository) DeleteByIDForClient(clientID string, id string) error {
	return repo.database.Where("id = ? AND client_id = ?", id, clientID).Delete(&models.BookingRecord{}).Error
}

func (repo *BookingRepository) DeleteCreatedBefore(cutoff time.Time) (int64, error) {
	result := repo.database.Where("created_at < ?", cutoff).Delete(&models.BookingRecord{})
	return result.RowsAffected, result.Error
}
