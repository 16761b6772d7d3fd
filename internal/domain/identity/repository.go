package identity

import "context"

// Repository is the user directory: it resolves identifiers to identities
// and persists profile mutations. Lookups return (nil, nil) when no identity
// matches, so "not found" stays distinct from infrastructure failures.
type Repository interface {
	Create(ctx context.Context, ident *Identity) error

	// GetBySubjectID retrieves an identity by its stable subject ID.
	GetBySubjectID(ctx context.Context, subjectID string) (*Identity, error)

	// GetByLoginHandle retrieves an identity by its unique login handle.
	GetByLoginHandle(ctx context.Context, handle string) (*Identity, error)

	Update(ctx context.Context, ident *Identity) error

	ExistsByLoginHandle(ctx context.Context, handle string) (bool, error)
}

// LinkedProviderRepository persists external identity bindings.
type LinkedProviderRepository interface {
	Create(ctx context.Context, link *LinkedProvider) error

	// GetByProviderSubject retrieves a link by the globally unique
	// (provider, provider-subject-id) pair. Returns (nil, nil) when absent.
	GetByProviderSubject(ctx context.Context, provider, providerSubjectID string) (*LinkedProvider, error)

	GetBySubjectID(ctx context.Context, subjectID string) ([]*LinkedProvider, error)
}

// RefreshCredentialRepository is the keyed single-value refresh token slot.
// Save is an upsert: at most one live refresh token per subject at all times.
type RefreshCredentialRepository interface {
	// Save stores the refresh token for the subject, replacing any prior value.
	Save(ctx context.Context, subjectID, token string) error

	// Find returns the stored token for the subject, or (nil, nil) when absent.
	Find(ctx context.Context, subjectID string) (*RefreshCredential, error)

	// FindSubjectID returns the subject ID only when the stored slot holds
	// exactly the given token. Used to cross-check a presented refresh token
	// before rotating it. Returns "" when no matching slot exists.
	FindSubjectID(ctx context.Context, subjectID, token string) (string, error)

	// Delete drops the subject's slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, subjectID string) error
}
