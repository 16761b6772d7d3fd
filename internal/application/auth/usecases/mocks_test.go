package usecases

import (
	"context"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"remory/internal/domain/identity"
	"remory/internal/infrastructure/auth"
	"remory/internal/shared/authorization"
	"remory/internal/shared/logger"
)

type mockIdentityRepo struct {
	mock.Mock
}

func (m *mockIdentityRepo) Create(ctx context.Context, ident *identity.Identity) error {
	args := m.Called(ctx, ident)
	return args.Error(0)
}

func (m *mockIdentityRepo) GetBySubjectID(ctx context.Context, subjectID string) (*identity.Identity, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}

func (m *mockIdentityRepo) GetByLoginHandle(ctx context.Context, handle string) (*identity.Identity, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}

func (m *mockIdentityRepo) Update(ctx context.Context, ident *identity.Identity) error {
	args := m.Called(ctx, ident)
	return args.Error(0)
}

func (m *mockIdentityRepo) ExistsByLoginHandle(ctx context.Context, handle string) (bool, error) {
	args := m.Called(ctx, handle)
	return args.Bool(0), args.Error(1)
}

type mockLinkRepo struct {
	mock.Mock
}

func (m *mockLinkRepo) Create(ctx context.Context, link *identity.LinkedProvider) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *mockLinkRepo) GetByProviderSubject(ctx context.Context, provider, providerSubjectID string) (*identity.LinkedProvider, error) {
	args := m.Called(ctx, provider, providerSubjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LinkedProvider), args.Error(1)
}

func (m *mockLinkRepo) GetBySubjectID(ctx context.Context, subjectID string) ([]*identity.LinkedProvider, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.LinkedProvider), args.Error(1)
}

type mockRefreshRepo struct {
	mock.Mock
}

func (m *mockRefreshRepo) Save(ctx context.Context, subjectID, token string) error {
	args := m.Called(ctx, subjectID, token)
	return args.Error(0)
}

func (m *mockRefreshRepo) Find(ctx context.Context, subjectID string) (*identity.RefreshCredential, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.RefreshCredential), args.Error(1)
}

func (m *mockRefreshRepo) FindSubjectID(ctx context.Context, subjectID, token string) (string, error) {
	args := m.Called(ctx, subjectID, token)
	return args.String(0), args.Error(1)
}

func (m *mockRefreshRepo) Delete(ctx context.Context, subjectID string) error {
	args := m.Called(ctx, subjectID)
	return args.Error(0)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Verify(password, hash string) error {
	args := m.Called(password, hash)
	return args.Error(0)
}

// newTestCodec returns a real codec so token tests exercise actual
// signing and decoding rather than canned strings.
func newTestCodec() *auth.TokenCodec {
	return auth.NewTokenCodec("test-secret", 30, 14)
}

func testIdentity(t interface{ Fatalf(string, ...any) }, handle, hash string) *identity.Identity {
	ident, err := identity.NewLocalIdentity(handle, hash, "Test User", "tester")
	if err != nil {
		t.Fatalf("failed to build identity: %v", err)
	}
	return ident
}

func testSocialIdentity(t interface{ Fatalf(string, ...any) }, phone, birthday *string) *identity.Identity {
	ident, err := identity.NewSocialIdentity("Social User", "social", phone, birthday)
	if err != nil {
		t.Fatalf("failed to build identity: %v", err)
	}
	return ident
}

func suspendedIdentity(t interface{ Fatalf(string, ...any) }, handle, hash string) *identity.Identity {
	ident := testIdentity(t, handle, hash)
	if err := ident.SetRole(authorization.RoleBad); err != nil {
		t.Fatalf("failed to set role: %v", err)
	}
	return ident
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}
