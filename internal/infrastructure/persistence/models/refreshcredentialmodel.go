package models

import "time"

// RefreshCredentialModel represents the single-slot refresh token storage.
// The subject ID is the primary key: the schema itself enforces at most one
// live refresh token per subject.
type RefreshCredentialModel struct {
	SubjectID string `gorm:"primarykey;size:32;column:subject_id"`
	Token     string `gorm:"not null;size:512"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (RefreshCredentialModel) TableName() string {
	return "refresh_credentials"
}
