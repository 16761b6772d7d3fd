package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"remory/internal/shared/authorization"
	"remory/internal/shared/errors"
)

func newLoginUseCase(identityRepo *mockIdentityRepo, refreshRepo *mockRefreshRepo, hasher *mockHasher) *LoginWithPasswordUseCase {
	return NewLoginWithPasswordUseCase(identityRepo, refreshRepo, hasher, newTestCodec(), testLogger())
}

func TestLoginWithPassword_Success(t *testing.T) {
	identityRepo := new(mockIdentityRepo)
	refreshRepo := new(mockRefreshRepo)
	hasher := new(mockHasher)

	ident := testIdentity(t, "alice", "hashed-secret")
	identityRepo.On("GetByLoginHandle", mock.Anything, "alice").Return(ident, nil)
	hasher.On("Verify", "correct horse", "hashed-secret").Return(nil)
	identityRepo.On("Update", mock.Anything, ident).Return(nil)
	refreshRepo.On("Save", mock.Anything, ident.SubjectID(), mock.AnythingOfType("string")).Return(nil)

	uc := newLoginUseCase(identityRepo, refreshRepo, hasher)
	result, err := uc.Execute(context.Background(), Credentials{
		Handle:     "alice",
		Secret:     "correct horse",
		RememberMe: true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Positive(t, result.ExpiresIn)
	assert.Equal(t, ident.SubjectID(), result.Profile.SubjectID)
	assert.True(t, ident.RememberMe())
	refreshRepo.AssertExpectations(t)
}

func TestLoginWithPassword_UnknownHandleAndWrongPasswordLookAlike(t *testing.T) {
	// Both failures must return the identical generic error.
	identityRepo := new(mockIdentityRepo)
	refreshRepo := new(mockRefreshRepo)
	hasher := new(mockHasher)

	identityRepo.On("GetByLoginHandle", mock.Anything, "ghost").Return(nil, nil)

	ident := testIdentity(t, "alice", "hashed-secret")
	identityRepo.On("GetByLoginHandle", mock.Anything, "alice").Return(ident, nil)
	hasher.On("Verify", "wrong", "hashed-secret").Return(assert.AnError)

	uc := newLoginUseCase(identityRepo, refreshRepo, hasher)

	_, errUnknown := uc.Execute(context.Background(), Credentials{Handle: "ghost", Secret: "whatever"})
	_, errWrong := uc.Execute(context.Background(), Credentials{Handle: "alice", Secret: "wrong"})

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errors.GetAuthError(errUnknown).Message, errors.GetAuthError(errWrong).Message)
	assert.Equal(t, 401, errors.GetAuthError(errUnknown).Code)
}

func TestLoginWithPassword_SocialOnlyAccountHasNoSecret(t *testing.T) {
	identityRepo := new(mockIdentityRepo)
	refreshRepo := new(mockRefreshRepo)
	hasher := new(mockHasher)

	ident := testSocialIdentity(t, nil, nil)
	identityRepo.On("GetByLoginHandle", mock.Anything, "social").Return(ident, nil)

	uc := newLoginUseCase(identityRepo, refreshRepo, hasher)
	_, err := uc.Execute(context.Background(), Credentials{Handle: "social", Secret: "anything"})

	require.Error(t, err)
	assert.Equal(t, 401, errors.GetAuthError(err).Code)
	hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestLoginWithPassword_SuspendedAccountRejectedAfterVerification(t *testing.T) {
	identityRepo := new(mockIdentityRepo)
	refreshRepo := new(mockRefreshRepo)
	hasher := new(mockHasher)

	ident := suspendedIdentity(t, "banned", "hashed-secret")
	identityRepo.On("GetByLoginHandle", mock.Anything, "banned").Return(ident, nil)
	hasher.On("Verify", "correct horse", "hashed-secret").Return(nil)

	uc := newLoginUseCase(identityRepo, refreshRepo, hasher)
	_, err := uc.Execute(context.Background(), Credentials{Handle: "banned", Secret: "correct horse"})

	require.Error(t, err)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, 403, authErr.Code)
	assert.True(t, errors.IsSecurityEvent(err))
	// The password was checked before the gate fired.
	hasher.AssertExpectations(t)
	refreshRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginWithPassword_WithdrawnAccountRejected(t *testing.T) {
	identityRepo := new(mockIdentityRepo)
	refreshRepo := new(mockRefreshRepo)
	hasher := new(mockHasher)

	ident := testIdentity(t, "gone", "hashed-secret")
	ident.Withdraw()
	identityRepo.On("GetByLoginHandle", mock.Anything, "gone").Return(ident, nil)
	hasher.On("Verify", "correct horse", "hashed-secret").Return(nil)

	uc := newLoginUseCase(identityRepo, refreshRepo, hasher)
	_, err := uc.Execute(context.Background(), Credentials{Handle: "gone", Secret: "correct horse"})

	require.Error(t, err)
	assert.Equal(t, 403, errors.GetAuthError(err).Code)
}

func TestLoginWithPassword_BlankFields(t *testing.T) {
	uc := newLoginUseCase(new(mockIdentityRepo), new(mockRefreshRepo), new(mockHasher))

	_, err := uc.Execute(context.Background(), Credentials{Handle: "", Secret: "x"})
	require.Error(t, err)
	assert.Equal(t, 400, errors.GetAppError(err).Code)

	_, err = uc.Execute(context.Background(), Credentials{Handle: "x", Secret: ""})
	require.Error(t, err)
	assert.Equal(t, 400, errors.GetAppError(err).Code)
}

func TestLoginWithPassword_RememberMePersistenceFailureIsNonFatal(t *testing.T) {
	identityRepo := new(mockIdentityRepo)
	refreshRepo := new(mockRefreshRepo)
	hasher := new(mockHasher)

	ident := testIdentity(t, "alice", "hashed-secret")
	identityRepo.On("GetByLoginHandle", mock.Anything, "alice").Return(ident, nil)
	hasher.On("Verify", "correct horse", "hashed-secret").Return(nil)
	identityRepo.On("Update", mock.Anything, ident).Return(assert.AnError)
	refreshRepo.On("Save", mock.Anything, ident.SubjectID(), mock.AnythingOfType("string")).Return(nil)

	uc := newLoginUseCase(identityRepo, refreshRepo, hasher)
	result, err := uc.Execute(context.Background(), Credentials{Handle: "alice", Secret: "correct horse"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
}

func TestLoginWithPassword_PreResolvedSubject(t *testing.T) {
	identityRepo := new(mockIdentityRepo)
	refreshRepo := new(mockRefreshRepo)
	hasher := new(mockHasher)

	ident := testIdentity(t, "alice", "hashed-secret")
	identityRepo.On("GetBySubjectID", mock.Anything, ident.SubjectID()).Return(ident, nil)
	hasher.On("Verify", "correct horse", "hashed-secret").Return(nil)
	identityRepo.On("Update", mock.Anything, ident).Return(nil)
	refreshRepo.On("Save", mock.Anything, ident.SubjectID(), mock.AnythingOfType("string")).Return(nil)

	uc := newLoginUseCase(identityRepo, refreshRepo, hasher)
	result, err := uc.ExecutePreResolved(context.Background(), PreResolvedSubject{
		SubjectID: ident.SubjectID(),
		Secret:    "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, authorization.RoleUser, result.Profile.Role)
	identityRepo.AssertNotCalled(t, "GetByLoginHandle", mock.Anything, mock.Anything)
}
