package usecases

import (
	"context"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

// Credentials is the regular login request: handle and secret from the
// request body.
type Credentials struct {
	Handle     string
	Secret     string
	RememberMe bool
}

// PreResolvedSubject is the alternate entry path where the subject has
// already been established upstream and only the secret remains to verify.
// The two request shapes are decided once at the boundary, never via
// untyped request attributes.
type PreResolvedSubject struct {
	SubjectID  string
	Secret     string
	RememberMe bool
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	Profile      ProfileSnapshot
}

type LoginWithPasswordUseCase struct {
	identityRepo identity.Repository
	refreshRepo  identity.RefreshCredentialRepository
	hasher       identity.PasswordHasher
	tokens       TokenService
	logger       logger.Interface
}

func NewLoginWithPasswordUseCase(
	identityRepo identity.Repository,
	refreshRepo identity.RefreshCredentialRepository,
	hasher identity.PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		identityRepo: identityRepo,
		refreshRepo:  refreshRepo,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd Credentials) (*LoginResult, error) {
	if cmd.Handle == "" || cmd.Secret == "" {
		return nil, errors.NewBadRequestError("login handle and password are required")
	}

	ident, err := uc.identityRepo.GetByLoginHandle(ctx, cmd.Handle)
	if err != nil {
		uc.logger.Errorw("failed to get identity by login handle", "error", err)
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	// Unknown handle and wrong password surface the same generic error
	// so callers cannot enumerate accounts.
	if ident == nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	return uc.authenticate(ctx, ident, cmd.Secret, cmd.RememberMe)
}

// ExecutePreResolved handles the continuation path where the subject was
// established before the secret check.
func (uc *LoginWithPasswordUseCase) ExecutePreResolved(ctx context.Context, cmd PreResolvedSubject) (*LoginResult, error) {
	if cmd.SubjectID == "" || cmd.Secret == "" {
		return nil, errors.NewBadRequestError("subject and password are required")
	}

	ident, err := uc.identityRepo.GetBySubjectID(ctx, cmd.SubjectID)
	if err != nil {
		uc.logger.Errorw("failed to get identity by subject ID", "error", err)
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	if ident == nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	return uc.authenticate(ctx, ident, cmd.Secret, cmd.RememberMe)
}

func (uc *LoginWithPasswordUseCase) authenticate(ctx context.Context, ident *identity.Identity, secret string, rememberMe bool) (*LoginResult, error) {
	// Social-only accounts have no secret; do not reveal that either.
	if !ident.HasSecret() {
		return nil, errors.NewInvalidCredentialsError()
	}
	if err := uc.hasher.Verify(secret, *ident.SecretHash()); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	// The role gate runs after verification: a suspended account with the
	// right password is authenticated but still rejected.
	if err := roleGateError(ident.Role()); err != nil {
		return nil, err
	}

	ident.SetRememberMe(rememberMe)
	if err := uc.identityRepo.Update(ctx, ident); err != nil {
		// Losing the remember-me flag is not worth failing the login.
		uc.logger.Warnw("failed to persist remember-me flag", "error", err, "subject_id", ident.SubjectID())
	}

	pair, err := uc.tokens.MintPair(ident.SubjectID(), ident.Role(), ident.DisplayName())
	if err != nil {
		uc.logger.Errorw("failed to mint token pair", "error", err, "subject_id", ident.SubjectID())
		return nil, fmt.Errorf("failed to mint tokens: %w", err)
	}

	// Upsert: any previous session's refresh token becomes unrefreshable.
	if err := uc.refreshRepo.Save(ctx, ident.SubjectID(), pair.RefreshToken); err != nil {
		uc.logger.Errorw("failed to save refresh credential", "error", err, "subject_id", ident.SubjectID())
		return nil, fmt.Errorf("failed to save refresh credential: %w", err)
	}

	uc.logger.Infow("login succeeded", "subject_id", ident.SubjectID())

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		Profile:      snapshotOf(ident),
	}, nil
}
