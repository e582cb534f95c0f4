package models

import "time"

// RegistrationDraftSchemaVersion is bumped whenever RegistrationForm changes
// shape; stored drafts with another version are discarded on load.
const RegistrationDraftSchemaVersion = 1

// RegistrationDraft holds the sealed registration form progress of one client.
type RegistrationDraft struct {
	ClientID      string `gorm:"primaryKey"`
	SchemaVersion int    `gorm:"not null"`
	Payload       string `gorm:"not null"`
	UpdatedAt     time.Time
}

// DoctorHandoff is the single cross-page slot holding the doctor most
// recently picked from the recommendations.
type DoctorHandoff struct {
	ClientID  string       `gorm:"primaryKey"`
	DoctorID  string       `gorm:"not null"`
	Doctor    DoctorRecord `gorm:"serializer:json"`
	UpdatedAt time.Time
}
