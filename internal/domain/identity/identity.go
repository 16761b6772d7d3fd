// Package identity holds the local account aggregate and the ports the
// authentication subsystem consumes: the user directory, the linked provider
// registry, and the single-slot refresh credential store.
package identity

import (
	"fmt"
	"time"

	"remory/internal/shared/authorization"
	"remory/internal/shared/id"
)

// Identity represents one local account. Accounts created through a social
// callback start without a login handle and secret hash; both stay nil until
// the member completes registration. Identities are never hard-deleted, the
// role transitions to EXIT instead.
type Identity struct {
	subjectID    string
	loginHandle  *string
	secretHash   *string
	displayName  string
	nickname     string
	phone        *string
	birthday     *string
	role         authorization.UserRole
	rememberMe   bool
	registeredAt time.Time
	updatedAt    time.Time
}

// NewLocalIdentity creates an identity registered with a login handle and a
// pre-hashed secret.
func NewLocalIdentity(loginHandle, secretHash, displayName, nickname string) (*Identity, error) {
	if loginHandle == "" {
		return nil, fmt.Errorf("login handle is required")
	}
	if secretHash == "" {
		return nil, fmt.Errorf("secret hash is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	now := time.Now().UTC()
	return &Identity{
		subjectID:    id.MustGenerateWithPrefix(id.PrefixIdentity, id.DefaultLength),
		loginHandle:  &loginHandle,
		secretHash:   &secretHash,
		displayName:  displayName,
		nickname:     nickname,
		role:         authorization.RoleUser,
		registeredAt: now,
		updatedAt:    now,
	}, nil
}

// NewSocialIdentity creates an identity from an externally verified profile.
// Phone and birthday are optional; some providers never supply them.
func NewSocialIdentity(displayName, nickname string, phone, birthday *string) (*Identity, error) {
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	now := time.Now().UTC()
	return &Identity{
		subjectID:    id.MustGenerateWithPrefix(id.PrefixIdentity, id.DefaultLength),
		displayName:  displayName,
		nickname:     nickname,
		phone:        phone,
		birthday:     birthday,
		role:         authorization.RoleUser,
		registeredAt: now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds an identity from persistence.
func Reconstruct(
	subjectID string,
	loginHandle, secretHash *string,
	displayName, nickname string,
	phone, birthday *string,
	role authorization.UserRole,
	rememberMe bool,
	registeredAt, updatedAt time.Time,
) (*Identity, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("subject ID cannot be empty")
	}
	return &Identity{
		subjectID:    subjectID,
		loginHandle:  loginHandle,
		secretHash:   secretHash,
		displayName:  displayName,
		nickname:     nickname,
		phone:        phone,
		birthday:     birthday,
		role:         role,
		rememberMe:   rememberMe,
		registeredAt: registeredAt,
		updatedAt:    updatedAt,
	}, nil
}

func (i *Identity) SubjectID() string               { return i.subjectID }
func (i *Identity) LoginHandle() *string            { return i.loginHandle }
func (i *Identity) SecretHash() *string             { return i.secretHash }
func (i *Identity) DisplayName() string             { return i.displayName }
func (i *Identity) Nickname() string                { return i.nickname }
func (i *Identity) Phone() *string                  { return i.phone }
func (i *Identity) Birthday() *string               { return i.birthday }
func (i *Identity) Role() authorization.UserRole    { return i.role }
func (i *Identity) RememberMe() bool                { return i.rememberMe }
func (i *Identity) RegisteredAt() time.Time         { return i.registeredAt }
func (i *Identity) UpdatedAt() time.Time            { return i.updatedAt }

// HasSecret reports whether password login is available for this identity.
// Social-only accounts pending completion have no secret.
func (i *Identity) HasSecret() bool {
	return i.secretHash != nil && *i.secretHash != ""
}

// ProfileComplete reports whether phone and birthday are both present.
// Social identities with an incomplete profile are redirected to the
// completion flow instead of receiving tokens.
func (i *Identity) ProfileComplete() bool {
	return i.phone != nil && *i.phone != "" && i.birthday != nil && *i.birthday != ""
}

// CompleteProfile fills the fields a provider did not supply.
func (i *Identity) CompleteProfile(nickname, phone, birthday string) error {
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	if birthday == "" {
		return fmt.Errorf("birthday is required")
	}
	if nickname != "" {
		i.nickname = nickname
	}
	i.phone = &phone
	i.birthday = &birthday
	i.touch()
	return nil
}

// SetRememberMe records the caller's session extension preference.
func (i *Identity) SetRememberMe(remember bool) {
	i.rememberMe = remember
	i.touch()
}

// ChangeSecret replaces the stored secret hash.
func (i *Identity) ChangeSecret(secretHash string) error {
	if secretHash == "" {
		return fmt.Errorf("secret hash is required")
	}
	i.secretHash = &secretHash
	i.touch()
	return nil
}

// SetRole applies a moderation role change.
func (i *Identity) SetRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	i.role = role
	i.touch()
	return nil
}

// Withdraw marks the account as exited. The row stays, the role changes.
func (i *Identity) Withdraw() {
	i.role = authorization.RoleExit
	i.touch()
}

func (i *Identity) touch() {
	i.updatedAt = time.Now().UTC()
}
