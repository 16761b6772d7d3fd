package mappers

import (
	"remory/internal/domain/identity"
	"remory/internal/infrastructure/persistence/models"
	"remory/internal/shared/authorization"
)

// IdentityMapper handles the conversion between the identity aggregate and
// its persistence model.
type IdentityMapper interface {
	ToModel(entity *identity.Identity) *models.IdentityModel
	ToDomain(model *models.IdentityModel) (*identity.Identity, error)
}

type IdentityMapperImpl struct{}

func NewIdentityMapper() IdentityMapper {
	return &IdentityMapperImpl{}
}

func (m *IdentityMapperImpl) ToModel(entity *identity.Identity) *models.IdentityModel {
	if entity == nil {
		return nil
	}
	return &models.IdentityModel{
		SubjectID:    entity.SubjectID(),
		LoginHandle:  entity.LoginHandle(),
		SecretHash:   entity.SecretHash(),
		DisplayName:  entity.DisplayName(),
		Nickname:     entity.Nickname(),
		Phone:        entity.Phone(),
		Birthday:     entity.Birthday(),
		Role:         entity.Role().String(),
		RememberMe:   entity.RememberMe(),
		RegisteredAt: entity.RegisteredAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *IdentityMapperImpl) ToDomain(model *models.IdentityModel) (*identity.Identity, error) {
	if model == nil {
		return nil, nil
	}
	return identity.Reconstruct(
		model.SubjectID,
		model.LoginHandle,
		model.SecretHash,
		model.DisplayName,
		model.Nickname,
		model.Phone,
		model.Birthday,
		authorization.ParseUserRole(model.Role),
		model.RememberMe,
		model.RegisteredAt,
		model.UpdatedAt,
	)
}
