package usecases

import (
	"context"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

type GetProfileResult struct {
	Profile         ProfileSnapshot `json:"profile"`
	Phone           *string         `json:"phone,omitempty"`
	Birthday        *string         `json:"birthday,omitempty"`
	ProfileComplete bool            `json:"profile_complete"`
	Providers       []string        `json:"providers"`
}

type GetProfileUseCase struct {
	identityRepo identity.Repository
	linkRepo     identity.LinkedProviderRepository
	logger       logger.Interface
}

func NewGetProfileUseCase(
	identityRepo identity.Repository,
	linkRepo identity.LinkedProviderRepository,
	logger logger.Interface,
) *GetProfileUseCase {
	return &GetProfileUseCase{
		identityRepo: identityRepo,
		linkRepo:     linkRepo,
		logger:       logger,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, subjectID string) (*GetProfileResult, error) {
	if subjectID == "" {
		return nil, errors.NewBadRequestError("subject ID is required")
	}

	ident, err := uc.identityRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		uc.logger.Errorw("failed to get identity", "error", err, "subject_id", subjectID)
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	if ident == nil {
		return nil, errors.NewNotFoundError("identity not found")
	}

	links, err := uc.linkRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		uc.logger.Errorw("failed to get provider links", "error", err, "subject_id", subjectID)
		return nil, fmt.Errorf("failed to get provider links: %w", err)
	}
	providers := make([]string, 0, len(links))
	for _, link := range links {
		providers = append(providers, link.Provider)
	}

	return &GetProfileResult{
		Profile:         snapshotOf(ident),
		Phone:           ident.Phone(),
		Birthday:        ident.Birthday(),
		ProfileComplete: ident.ProfileComplete(),
		Providers:       providers,
	}, nil
}
