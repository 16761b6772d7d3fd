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

// ReissueTokenCommand carries the presented token pair and the caller's
// session extension request.
type ReissueTokenCommand struct {
	AccessToken  string
	RefreshToken string
	ExtendLogin  bool
}

// ReissueTokenResult always carries a fresh access token and the subject's
// profile snapshot. RefreshToken is non-empty only when the slot was rotated.
type ReissueTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	Profile      ProfileSnapshot
}

type ReissueTokenUseCase struct {
	identityRepo identity.Repository
	refreshRepo  identity.RefreshCredentialRepository
	tokens       TokenService
	logger       logger.Interface
}

func NewReissueTokenUseCase(
	identityRepo identity.Repository,
	refreshRepo identity.RefreshCredentialRepository,
	tokens TokenService,
	logger logger.Interface,
) *ReissueTokenUseCase {
	return &ReissueTokenUseCase{
		identityRepo: identityRepo,
		refreshRepo:  refreshRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

func (uc *ReissueTokenUseCase) Execute(ctx context.Context, cmd ReissueTokenCommand) (*ReissueTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewUnauthorizedError("refresh token is required, please login again")
	}

	claims, err := uc.tokens.Decode(cmd.RefreshToken)
	if err != nil {
		if stderrors.Is(err, auth.ErrEmptyToken) || stderrors.Is(err, auth.ErrMalformedToken) {
			return nil, errors.NewTokenMalformedError(errors.TokenClassRefresh)
		}
		return nil, fmt.Errorf("failed to decode refresh token: %w", err)
	}
	// An access token presented in the refresh position is treated the same
	// as a forged one.
	if claims.TokenClass != auth.TokenClassRefresh {
		return nil, errors.NewTokenMalformedError(errors.TokenClassRefresh)
	}
	if claims.Expired() {
		// The slot is dead weight once its token can no longer be used.
		if derr := uc.refreshRepo.Delete(ctx, claims.SubjectID); derr != nil {
			uc.logger.Warnw("failed to delete expired refresh slot", "error", derr, "subject_id", claims.SubjectID)
		}
		return nil, errors.NewTokenExpiredError(errors.TokenClassRefresh)
	}

	ident, err := uc.identityRepo.GetBySubjectID(ctx, claims.SubjectID)
	if err != nil {
		uc.logger.Errorw("failed to get identity for reissue", "error", err, "subject_id", claims.SubjectID)
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	if ident == nil {
		return nil, errors.NewUnauthorizedError("unknown subject, please login again")
	}
	if err := roleGateError(ident.Role()); err != nil {
		return nil, err
	}

	// Cross-check against the stored slot: a signed, unexpired refresh token
	// that was since replaced by a newer login must not mint anything.
	stored, err := uc.refreshRepo.FindSubjectID(ctx, claims.SubjectID, cmd.RefreshToken)
	if err != nil {
		uc.logger.Errorw("failed to cross-check refresh slot", "error", err, "subject_id", claims.SubjectID)
		return nil, fmt.Errorf("failed to check refresh credential: %w", err)
	}
	if stored == "" {
		uc.logger.Warnw("refresh token does not match stored slot", "subject_id", claims.SubjectID)
		return nil, errors.NewUnauthorizedError("refresh token is no longer valid, please login again")
	}

	accessToken, err := uc.tokens.Mint(ident.SubjectID(), ident.Role(), ident.DisplayName(), auth.TokenClassAccess)
	if err != nil {
		uc.logger.Errorw("failed to mint access token", "error", err, "subject_id", ident.SubjectID())
		return nil, fmt.Errorf("failed to mint access token: %w", err)
	}

	result := &ReissueTokenResult{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.tokens.AccessExpMinutes()) * 60,
		Profile:     snapshotOf(ident),
	}

	if cmd.ExtendLogin {
		refreshToken, err := uc.tokens.Mint(ident.SubjectID(), ident.Role(), ident.DisplayName(), auth.TokenClassRefresh)
		if err != nil {
			uc.logger.Errorw("failed to mint refresh token", "error", err, "subject_id", ident.SubjectID())
			return nil, fmt.Errorf("failed to mint refresh token: %w", err)
		}
		// Save is an upsert, so a slot lost to a store failure during login
		// is recreated here rather than erroring.
		if err := uc.refreshRepo.Save(ctx, ident.SubjectID(), refreshToken); err != nil {
			uc.logger.Errorw("failed to rotate refresh slot", "error", err, "subject_id", ident.SubjectID())
			return nil, fmt.Errorf("failed to save refresh credential: %w", err)
		}
		result.RefreshToken = refreshToken
	}

	return result, nil
}
