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

type LinkedProviderRepository struct {
	db     *gorm.DB
	mapper mappers.LinkedProviderMapper
}

func NewLinkedProviderRepository(db *gorm.DB) identity.LinkedProviderRepository {
	return &LinkedProviderRepository{
		db:     db,
		mapper: mappers.NewLinkedProviderMapper(),
	}
}

func (r *LinkedProviderRepository) Create(ctx context.Context, link *identity.LinkedProvider) error {
	model := r.mapper.ToModel(link)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create linked provider: %w", err)
	}
	link.ID = model.ID
	return nil
}

func (r *LinkedProviderRepository) GetByProviderSubject(ctx context.Context, provider, providerSubjectID string) (*identity.LinkedProvider, error) {
	var model models.LinkedProviderModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_subject_id = ?", provider, providerSubjectID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get linked provider: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *LinkedProviderRepository) GetBySubjectID(ctx context.Context, subjectID string) ([]*identity.LinkedProvider, error) {
	var linkModels []*models.LinkedProviderModel
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at ASC").
		Find(&linkModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get linked providers by subject ID: %w", err)
	}
	return r.mapper.ToDomainList(linkModels), nil
}
