// Package usecases implements the authentication and session lifecycle
// operations. All token issuance funnels through TokenService.MintPair, and
// every path that hands out tokens applies the same account-state gate.
package usecases

import (
	"remory/internal/domain/identity"
	"remory/internal/infrastructure/auth"
	"remory/internal/shared/authorization"
	"remory/internal/shared/errors"
)

// TokenService is the slice of the token codec the use cases consume.
// *auth.TokenCodec satisfies it.
type TokenService interface {
	Mint(subjectID string, role authorization.UserRole, displayName string, class auth.TokenClass) (string, error)
	MintPair(subjectID string, role authorization.UserRole, displayName string) (*auth.TokenPair, error)
	Decode(tokenString string) (*auth.Claims, error)
	AccessExpMinutes() int
}

// ProfileSnapshot is the minimal profile returned alongside tokens.
type ProfileSnapshot struct {
	SubjectID   string                 `json:"subject_id"`
	DisplayName string                 `json:"display_name"`
	Nickname    string                 `json:"nickname"`
	Role        authorization.UserRole `json:"role"`
	RememberMe  bool                   `json:"remember_me"`
}

func snapshotOf(ident *identity.Identity) ProfileSnapshot {
	return ProfileSnapshot{
		SubjectID:   ident.SubjectID(),
		DisplayName: ident.DisplayName(),
		Nickname:    ident.Nickname(),
		Role:        ident.Role(),
		RememberMe:  ident.RememberMe(),
	}
}

// roleGateError applies the account-state gate shared by every
// authentication and reissue path. Returns nil when the role may
// authenticate.
func roleGateError(role authorization.UserRole) error {
	switch role {
	case authorization.RoleBad:
		return errors.NewAccountSuspendedError()
	case authorization.RoleExit:
		return errors.NewAccountWithdrawnError()
	}
	if !role.CanAuthenticate() {
		return errors.NewForbiddenError("account cannot authenticate")
	}
	return nil
}
