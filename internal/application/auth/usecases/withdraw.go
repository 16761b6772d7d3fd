package usecases

import (
	"context"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

type WithdrawCommand struct {
	SubjectID string
}

// WithdrawUseCase retires an account. The row stays with role EXIT so the
// subject ID remains resolvable; the refresh slot is cleared so no new
// tokens can be minted.
type WithdrawUseCase struct {
	identityRepo identity.Repository
	refreshRepo  identity.RefreshCredentialRepository
	logger       logger.Interface
}

func NewWithdrawUseCase(
	identityRepo identity.Repository,
	refreshRepo identity.RefreshCredentialRepository,
	logger logger.Interface,
) *WithdrawUseCase {
	return &WithdrawUseCase{
		identityRepo: identityRepo,
		refreshRepo:  refreshRepo,
		logger:       logger,
	}
}

func (uc *WithdrawUseCase) Execute(ctx context.Context, cmd WithdrawCommand) error {
	if cmd.SubjectID == "" {
		return errors.NewBadRequestError("subject ID is required")
	}

	ident, err := uc.identityRepo.GetBySubjectID(ctx, cmd.SubjectID)
	if err != nil {
		uc.logger.Errorw("failed to get identity", "error", err, "subject_id", cmd.SubjectID)
		return fmt.Errorf("failed to get identity: %w", err)
	}
	if ident == nil {
		return errors.NewNotFoundError("identity not found")
	}

	ident.Withdraw()
	if err := uc.identityRepo.Update(ctx, ident); err != nil {
		uc.logger.Errorw("failed to update identity", "error", err, "subject_id", cmd.SubjectID)
		return fmt.Errorf("failed to update identity: %w", err)
	}

	if err := uc.refreshRepo.Delete(ctx, cmd.SubjectID); err != nil {
		uc.logger.Warnw("failed to delete refresh slot on withdrawal", "error", err, "subject_id", cmd.SubjectID)
	}

	uc.logger.Infow("account withdrawn", "subject_id", cmd.SubjectID)
	return nil
}
