package models

import "time"

// IdentityModel represents the database persistence model for local accounts.
type IdentityModel struct {
	SubjectID    string  `gorm:"primarykey;size:32;column:subject_id"`
	LoginHandle  *string `gorm:"size:100;uniqueIndex:idx_identity_login_handle"`
	SecretHash   *string `gorm:"size:255"`
	DisplayName  string  `gorm:"not null;size:100"`
	Nickname     string  `gorm:"size:100"`
	Phone        *string `gorm:"size:30"`
	Birthday     *string `gorm:"size:10"`
	Role         string  `gorm:"not null;size:10;default:USER"`
	RememberMe   bool    `gorm:"not null;default:false"`
	RegisteredAt time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (IdentityModel) TableName() string {
	return "identities"
}
