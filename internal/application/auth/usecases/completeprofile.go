package usecases

import (
	"context"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

type CompleteProfileCommand struct {
	SubjectID string
	Nickname  string
	Phone     string
	Birthday  string
}

// CompleteProfileUseCase fills the profile fields a provider did not supply
// and, once the profile is complete, issues the tokens the social callback
// withheld.
type CompleteProfileUseCase struct {
	identityRepo identity.Repository
	refreshRepo  identity.RefreshCredentialRepository
	tokens       TokenService
	logger       logger.Interface
}

func NewCompleteProfileUseCase(
	identityRepo identity.Repository,
	refreshRepo identity.RefreshCredentialRepository,
	tokens TokenService,
	logger logger.Interface,
) *CompleteProfileUseCase {
	return &CompleteProfileUseCase{
		identityRepo: identityRepo,
		refreshRepo:  refreshRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

func (uc *CompleteProfileUseCase) Execute(ctx context.Context, cmd CompleteProfileCommand) (*LoginResult, error) {
	if cmd.SubjectID == "" {
		return nil, errors.NewBadRequestError("subject ID is required")
	}

	ident, err := uc.identityRepo.GetBySubjectID(ctx, cmd.SubjectID)
	if err != nil {
		uc.logger.Errorw("failed to get identity", "error", err, "subject_id", cmd.SubjectID)
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	if ident == nil {
		return nil, errors.NewNotFoundError("identity not found")
	}

	if err := ident.CompleteProfile(cmd.Nickname, cmd.Phone, cmd.Birthday); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := uc.identityRepo.Update(ctx, ident); err != nil {
		uc.logger.Errorw("failed to update identity", "error", err, "subject_id", cmd.SubjectID)
		return nil, fmt.Errorf("failed to update identity: %w", err)
	}

	if err := roleGateError(ident.Role()); err != nil {
		return nil, err
	}

	pair, err := uc.tokens.MintPair(ident.SubjectID(), ident.Role(), ident.DisplayName())
	if err != nil {
		uc.logger.Errorw("failed to mint token pair", "error", err, "subject_id", ident.SubjectID())
		return nil, fmt.Errorf("failed to mint tokens: %w", err)
	}
	if err := uc.refreshRepo.Save(ctx, ident.SubjectID(), pair.RefreshToken); err != nil {
		uc.logger.Errorw("failed to save refresh credential", "error", err, "subject_id", ident.SubjectID())
		return nil, fmt.Errorf("failed to save refresh credential: %w", err)
	}

	uc.logger.Infow("profile completed", "subject_id", ident.SubjectID())

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		Profile:      snapshotOf(ident),
	}, nil
}
