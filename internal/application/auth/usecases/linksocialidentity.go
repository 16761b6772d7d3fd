package usecases

import (
	"context"
	"fmt"

	"remory/internal/domain/identity"
	"remory/internal/infrastructure/auth"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
)

// LinkSocialIdentityCommand carries a profile already verified against the
// provider. Code exchange happens before this use case runs.
type LinkSocialIdentityCommand struct {
	Profile auth.VerifiedProfile
}

// PartialProfile is what the completion page can prefill. Fields are empty
// when the provider never supplied them.
type PartialProfile struct {
	DisplayName string
	Nickname    string
	Phone       string
	Birthday    string
}

// LinkSocialOutcome is either a completion redirect (NeedsCompletion true,
// no tokens) or a full login result.
type LinkSocialOutcome struct {
	SubjectID       string
	Provider        string
	NeedsCompletion bool
	Partial         PartialProfile
	Login           *LoginResult
}

type LinkSocialIdentityUseCase struct {
	identityRepo identity.Repository
	linkRepo     identity.LinkedProviderRepository
	refreshRepo  identity.RefreshCredentialRepository
	tokens       TokenService
	logger       logger.Interface
}

func NewLinkSocialIdentityUseCase(
	identityRepo identity.Repository,
	linkRepo identity.LinkedProviderRepository,
	refreshRepo identity.RefreshCredentialRepository,
	tokens TokenService,
	logger logger.Interface,
) *LinkSocialIdentityUseCase {
	return &LinkSocialIdentityUseCase{
		identityRepo: identityRepo,
		linkRepo:     linkRepo,
		refreshRepo:  refreshRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

func (uc *LinkSocialIdentityUseCase) Execute(ctx context.Context, cmd LinkSocialIdentityCommand) (*LinkSocialOutcome, error) {
	profile := cmd.Profile
	if !identity.IsKnownProvider(profile.Provider) {
		return nil, errors.NewBadRequestError(fmt.Sprintf("unknown provider: %s", profile.Provider))
	}
	if profile.ProviderSubjectID == "" {
		return nil, errors.NewBadRequestError("provider subject ID is required")
	}

	link, err := uc.linkRepo.GetByProviderSubject(ctx, profile.Provider, profile.ProviderSubjectID)
	if err != nil {
		uc.logger.Errorw("failed to look up provider link", "error", err, "provider", profile.Provider)
		return nil, fmt.Errorf("failed to get provider link: %w", err)
	}

	var ident *identity.Identity
	if link != nil {
		ident, err = uc.identityRepo.GetBySubjectID(ctx, link.SubjectID)
		if err != nil {
			uc.logger.Errorw("failed to get linked identity", "error", err, "subject_id", link.SubjectID)
			return nil, fmt.Errorf("failed to get identity: %w", err)
		}
		// A link pointing at a missing identity means the two stores
		// disagree; surface it loudly rather than re-registering.
		if ident == nil {
			return nil, errors.NewDataConsistencyError(
				fmt.Sprintf("provider link %s/%s references missing subject %s",
					profile.Provider, profile.ProviderSubjectID, link.SubjectID))
		}
	} else {
		ident, err = uc.register(ctx, profile)
		if err != nil {
			return nil, err
		}
	}

	// Completion need is re-evaluated on every callback, never cached: a
	// profile completed since the last visit goes straight to tokens.
	if !ident.ProfileComplete() {
		return &LinkSocialOutcome{
			SubjectID:       ident.SubjectID(),
			Provider:        profile.Provider,
			NeedsCompletion: true,
			Partial:         partialOf(ident),
		}, nil
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

	uc.logger.Infow("social login succeeded", "subject_id", ident.SubjectID(), "provider", profile.Provider)

	return &LinkSocialOutcome{
		SubjectID: ident.SubjectID(),
		Provider:  profile.Provider,
		Login: &LoginResult{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresIn:    pair.ExpiresIn,
			Profile:      snapshotOf(ident),
		},
	}, nil
}

func partialOf(ident *identity.Identity) PartialProfile {
	partial := PartialProfile{
		DisplayName: ident.DisplayName(),
		Nickname:    ident.Nickname(),
	}
	if ident.Phone() != nil {
		partial.Phone = *ident.Phone()
	}
	if ident.Birthday() != nil {
		partial.Birthday = *ident.Birthday()
	}
	return partial
}

func (uc *LinkSocialIdentityUseCase) register(ctx context.Context, profile auth.VerifiedProfile) (*identity.Identity, error) {
	// Phone and birthday are only recorded from providers that verify them
	// themselves. Anything else goes through the completion flow, even when
	// the payload happens to carry values.
	var phone, birthday *string
	if identity.ProviderSuppliesFullProfile(profile.Provider) {
		if profile.Phone != "" {
			phone = &profile.Phone
		}
		if profile.Birthday != "" {
			birthday = &profile.Birthday
		}
	}

	displayName := profile.Name
	if displayName == "" {
		displayName = profile.Nickname
	}

	ident, err := identity.NewSocialIdentity(displayName, profile.Nickname, phone, birthday)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := uc.identityRepo.Create(ctx, ident); err != nil {
		uc.logger.Errorw("failed to create social identity", "error", err, "provider", profile.Provider)
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	link, err := identity.NewLinkedProvider(ident.SubjectID(), profile.Provider, profile.ProviderSubjectID)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := uc.linkRepo.Create(ctx, link); err != nil {
		uc.logger.Errorw("failed to create provider link", "error", err, "subject_id", ident.SubjectID())
		return nil, fmt.Errorf("failed to create provider link: %w", err)
	}

	uc.logger.Infow("registered social identity", "subject_id", ident.SubjectID(), "provider", profile.Provider)
	return ident, nil
}
