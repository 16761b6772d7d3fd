package usecases

import (
	"context"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/shared/authorization"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

type ChangeRoleCommand struct {
	SubjectID string
	Role      string
}

// ChangeRoleUseCase applies a moderation role change. Demoting to a role
// that cannot authenticate also clears the refresh slot so the subject's
// session dies at the next reissue.
type ChangeRoleUseCase struct {
	identityRepo identity.Repository
	refreshRepo  identity.RefreshCredentialRepository
	logger       logger.Interface
}

func NewChangeRoleUseCase(
	identityRepo identity.Repository,
	refreshRepo identity.RefreshCredentialRepository,
	logger logger.Interface,
) *ChangeRoleUseCase {
	return &ChangeRoleUseCase{
		identityRepo: identityRepo,
		refreshRepo:  refreshRepo,
		logger:       logger,
	}
}

func (uc *ChangeRoleUseCase) Execute(ctx context.Context, cmd ChangeRoleCommand) error {
	if cmd.SubjectID == "" {
		return errors.NewBadRequestError("subject ID is required")
	}
	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return errors.NewBadRequestError(fmt.Sprintf("invalid role: %s", cmd.Role))
	}

	ident, err := uc.identityRepo.GetBySubjectID(ctx, cmd.SubjectID)
	if err != nil {
		uc.logger.Errorw("failed to get identity", "error", err, "subject_id", cmd.SubjectID)
		return fmt.Errorf("failed to get identity: %w", err)
	}
	if ident == nil {
		return errors.NewNotFoundError("identity not found")
	}

	if err := ident.SetRole(role); err != nil {
		return errors.NewBadRequestError(err.Error())
	}
	if err := uc.identityRepo.Update(ctx, ident); err != nil {
		uc.logger.Errorw("failed to update identity", "error", err, "subject_id", cmd.SubjectID)
		return fmt.Errorf("failed to update identity: %w", err)
	}

	if !role.CanAuthenticate() {
		if err := uc.refreshRepo.Delete(ctx, cmd.SubjectID); err != nil {
			uc.logger.Warnw("failed to delete refresh slot on demotion", "error", err, "subject_id", cmd.SubjectID)
		}
	}

	uc.logger.Infow("role changed", "subject_id", cmd.SubjectID, "role", role)
	return nil
}
