package db

import "gorm.io/gorm"

type Repositories struct {
	Bookings           *BookingRepository
	RegistrationDrafts *RegistrationDraftRepository
	Handoffs           *HandoffRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Bookings:           NewBookingRepository(database),
		RegistrationDrafts: NewRegistrationDraftRepository(database),
		Handoffs:           NewHandoffRepository(database),
	}
}
