package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/infrastructure/auth"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

type LogoutCommand struct {
	AccessToken string
}

// LogoutUseCase clears the subject's refresh slot. The access token the
// caller holds stays cryptographically valid until it expires; only the
// ability to refresh is revoked.
type LogoutUseCase struct {
	refreshRepo identity.RefreshCredentialRepository
	tokens      TokenService
	logger      logger.Interface
}

func NewLogoutUseCase(
	refreshRepo identity.RefreshCredentialRepository,
	tokens TokenService,
	logger logger.Interface,
) *LogoutUseCase {
	return &LogoutUseCase{
		refreshRepo: refreshRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.AccessToken == "" {
		return errors.NewBadRequestError("access token is required")
	}

	// Expired tokens still decode; logout with a stale access token is fine.
	claims, err := uc.tokens.Decode(cmd.AccessToken)
	if err != nil {
		if stderrors.Is(err, auth.ErrEmptyToken) || stderrors.Is(err, auth.ErrMalformedToken) {
			return errors.NewBadRequestError("access token is malformed")
		}
		return fmt.Errorf("failed to decode access token: %w", err)
	}

	if err := uc.refreshRepo.Delete(ctx, claims.SubjectID); err != nil {
		uc.logger.Errorw("failed to delete refresh slot", "error", err, "subject_id", claims.SubjectID)
		return errors.NewInternalError("failed to logout")
	}

	uc.logger.Infow("logout succeeded", "subject_id", claims.SubjectID)
	return nil
}
