package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"remory/internal/domain/identity"
	"remory/internal/infrastructure/persistence/models"
)

// RefreshCredentialRepository is the database-backed refresh token slot.
// The subject ID is the table's primary key, so the single-slot invariant
// is enforced by the schema and Save is a true upsert.
type RefreshCredentialRepository struct {
	db *gorm.DB
}

func NewRefreshCredentialRepository(db *gorm.DB) identity.RefreshCredentialRepository {
	return &RefreshCredentialRepository{db: db}
}

func (r *RefreshCredentialRepository) Save(ctx context.Context, subjectID, token string) error {
	model := &models.RefreshCredentialModel{
		SubjectID: subjectID,
		Token:     token,
		UpdatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save refresh credential: %w", err)
	}
	return nil
}

func (r *RefreshCredentialRepository) Find(ctx context.Context, subjectID string) (*identity.RefreshCredential, error) {
	var model models.RefreshCredentialModel
	err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find refresh credential: %w", err)
	}
	return &identity.RefreshCredential{
		SubjectID: model.SubjectID,
		Token:     model.Token,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func (r *RefreshCredentialRepository) FindSubjectID(ctx context.Context, subjectID, token string) (string, error) {
	var model models.RefreshCredentialModel
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND token = ?", subjectID, token).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up refresh credential: %w", err)
	}
	return model.SubjectID, nil
}

func (r *RefreshCredentialRepository) Delete(ctx context.Context, subjectID string) error {
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Delete(&models.RefreshCredentialModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete refresh credential: %w", err)
	}
	return nil
}
