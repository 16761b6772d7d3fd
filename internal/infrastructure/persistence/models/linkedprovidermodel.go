package models

import "time"

// LinkedProviderModel represents the database persistence model for external
// identity bindings. The (provider, provider_subject_id) pair carries a
// unique index so deduplication is a schema guarantee, not just a
// lookup-before-create convention.
type LinkedProviderModel struct {
	ID                uint   `gorm:"primarykey"`
	SubjectID         string `gorm:"not null;size:32;index:idx_linked_provider_subject;column:subject_id"`
	Provider          string `gorm:"not null;size:20;uniqueIndex:idx_provider_subject"`
	ProviderSubjectID string `gorm:"not null;size:255;uniqueIndex:idx_provider_subject;column:provider_subject_id"`
	CreatedAt         time.Time
}

// TableName specifies the table name for GORM
func (LinkedProviderModel) TableName() string {
	return "linked_providers"
}
