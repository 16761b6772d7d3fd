package usecases

import (
	"context"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

type ChangePasswordCommand struct {
	SubjectID string
	OldSecret string
	NewSecret string
}

type ChangePasswordUseCase struct {
	identityRepo identity.Repository
	hasher       identity.PasswordHasher
	logger       logger.Interface
}

func NewChangePasswordUseCase(
	identityRepo identity.Repository,
	hasher identity.PasswordHasher,
	logger logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		identityRepo: identityRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if cmd.SubjectID == "" || cmd.OldSecret == "" || cmd.NewSecret == "" {
		return errors.NewBadRequestError("subject, current password and new password are required")
	}

	ident, err := uc.identityRepo.GetBySubjectID(ctx, cmd.SubjectID)
	if err != nil {
		uc.logger.Errorw("failed to get identity", "error", err, "subject_id", cmd.SubjectID)
		return fmt.Errorf("failed to get identity: %w", err)
	}
	if ident == nil {
		return errors.NewNotFoundError("identity not found")
	}
	if !ident.HasSecret() {
		return errors.NewBadRequestError("account has no password set")
	}
	if err := uc.hasher.Verify(cmd.OldSecret, *ident.SecretHash()); err != nil {
		return errors.NewInvalidCredentialsError()
	}

	hash, err := uc.hasher.Hash(cmd.NewSecret)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err, "subject_id", cmd.SubjectID)
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := ident.ChangeSecret(hash); err != nil {
		return errors.NewBadRequestError(err.Error())
	}
	if err := uc.identityRepo.Update(ctx, ident); err != nil {
		uc.logger.Errorw("failed to update identity", "error", err, "subject_id", cmd.SubjectID)
		return fmt.Errorf("failed to update identity: %w", err)
	}

	uc.logger.Infow("password changed", "subject_id", cmd.SubjectID)
	return nil
}
