package mappers

import (
	"remory/internal/domain/identity"
	"remory/internal/infrastructure/persistence/models"
)

// LinkedProviderMapper handles the conversion between external identity
// bindings and their persistence model.
type LinkedProviderMapper interface {
	ToModel(entity *identity.LinkedProvider) *models.LinkedProviderModel
	ToDomain(model *models.LinkedProviderModel) *identity.LinkedProvider
	ToDomainList(items []*models.LinkedProviderModel) []*identity.LinkedProvider
}

type LinkedProviderMapperImpl struct{}

func NewLinkedProviderMapper() LinkedProviderMapper {
	return &LinkedProviderMapperImpl{}
}

func (m *LinkedProviderMapperImpl) ToModel(entity *identity.LinkedProvider) *models.LinkedProviderModel {
	if entity == nil {
		return nil
	}
	return &models.LinkedProviderModel{
		ID:                entity.ID,
		SubjectID:         entity.SubjectID,
		Provider:          entity.Provider,
		ProviderSubjectID: entity.ProviderSubjectID,
		CreatedAt:         entity.CreatedAt,
	}
}

func (m *LinkedProviderMapperImpl) ToDomain(model *models.LinkedProviderModel) *identity.LinkedProvider {
	if model == nil {
		return nil
	}
	return &identity.LinkedProvider{
		ID:                model.ID,
		SubjectID:         model.SubjectID,
		Provider:          model.Provider,
		ProviderSubjectID: model.ProviderSubjectID,
		CreatedAt:         model.CreatedAt,
	}
}

func (m *LinkedProviderMapperImpl) ToDomainList(items []*models.LinkedProviderModel) []*identity.LinkedProvider {
	result := make([]*identity.LinkedProvider, 0, len(items))
	for _, item := range items {
		result = append(result, m.ToDomain(item))
	}
	return result
}
