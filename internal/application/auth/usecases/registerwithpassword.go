package usecases

import (
	"context"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

type RegisterWithPasswordCommand struct {
	LoginHandle string
	Secret      string
	DisplayName string
	Nickname    string
}

type RegisterWithPasswordResult struct {
	SubjectID string
}

type RegisterWithPasswordUseCase struct {
	identityRepo identity.Repository
	hasher       identity.PasswordHasher
	logger       logger.Interface
}

func NewRegisterWithPasswordUseCase(
	identityRepo identity.Repository,
	hasher identity.PasswordHasher,
	logger logger.Interface,
) *RegisterWithPasswordUseCase {
	return &RegisterWithPasswordUseCase{
		identityRepo: identityRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

func (uc *RegisterWithPasswordUseCase) Execute(ctx context.Context, cmd RegisterWithPasswordCommand) (*RegisterWithPasswordResult, error) {
	if cmd.LoginHandle == "" || cmd.Secret == "" || cmd.DisplayName == "" {
		return nil, errors.NewBadRequestError("login handle, password and display name are required")
	}

	exists, err := uc.identityRepo.ExistsByLoginHandle(ctx, cmd.LoginHandle)
	if err != nil {
		uc.logger.Errorw("failed to check login handle", "error", err)
		return nil, fmt.Errorf("failed to check login handle: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("login handle is already in use")
	}

	hash, err := uc.hasher.Hash(cmd.Secret)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ident, err := identity.NewLocalIdentity(cmd.LoginHandle, hash, cmd.DisplayName, cmd.Nickname)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	if err := uc.identityRepo.Create(ctx, ident); err != nil {
		uc.logger.Errorw("failed to create identity", "error", err)
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	uc.logger.Infow("registered identity", "subject_id", ident.SubjectID())
	return &RegisterWithPasswordResult{SubjectID: ident.SubjectID()}, nil
}
