package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"remory/internal/domain/identity"
	"remory/internal/infrastructure/persistence/mappers"
	"remory/internal/infrastructure/persistence/models"
)

type IdentityRepository struct {
	db     *gorm.DB
	mapper mappers.IdentityMapper
}

func NewIdentityRepository(db *gorm.DB) identity.Repository {
	return &IdentityRepository{
		db:     db,
		mapper: mappers.NewIdentityMapper(),
	}
}

func (r *IdentityRepository) Create(ctx context.Context, ident *identity.Identity) error {
	model := r.mapper.ToModel(ident)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}
	return nil
}

func (r *IdentityRepository) GetBySubjectID(ctx context.Context, subjectID string) (*identity.Identity, error) {
	var model models.IdentityModel
	err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identity by subject ID: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *IdentityRepository) GetByLoginHandle(ctx context.Context, handle string) (*identity.Identity, error) {
	var model models.IdentityModel
	err := r.db.WithContext(ctx).Where("login_handle = ?", handle).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identity by login handle: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *IdentityRepository) Update(ctx context.Context, ident *identity.Identity) error {
	model := r.mapper.ToModel(ident)
	result := r.db.WithContext(ctx).
		Model(&models.IdentityModel{}).
		Where("subject_id = ?", model.SubjectID).
		Select("*").
		Omit("subject_id", "registered_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update identity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("identity not found: %s", model.SubjectID)
	}
	return nil
}

func (r *IdentityRepository) ExistsByLoginHandle(ctx context.Context, handle string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.IdentityModel{}).
		Where("login_handle = ?", handle).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check login handle existence: %w", err)
	}
	return count > 0, nil
}
