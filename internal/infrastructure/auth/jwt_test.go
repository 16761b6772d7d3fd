package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remory/internal/shared/authorization"
)

const testSecret = "test-secret-key"

func newTestCodec() *TokenCodec {
	return NewTokenCodec(testSecret, 30, 14)
}

func TestTokenCodec_MintAndDecode(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.Mint("id_subject1", authorization.RoleUser, "Hong Gildong", TokenClassAccess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "id_subject1", claims.SubjectID)
	assert.Equal(t, authorization.RoleUser, claims.Role)
	assert.Equal(t, "Hong Gildong", claims.DisplayName)
	assert.Equal(t, TokenClassAccess, claims.TokenClass)

	expired, err := codec.IsExpired(token)
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestTokenCodec_MintPair(t *testing.T) {
	codec := newTestCodec()

	pair, err := codec.MintPair("id_subject1", authorization.RoleAdmin, "Hong Gildong")
	require.NoError(t, err)

	accessClass, err := codec.ClassOf(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenClassAccess, accessClass)

	refreshClass, err := codec.ClassOf(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenClassRefresh, refreshClass)

	assert.Equal(t, int64(30*60), pair.ExpiresIn)
}

func TestTokenCodec_ExpiredTokenStillDecodes(t *testing.T) {
	// Negative lifetime forces the expiry instant into the past.
	codec := NewTokenCodec(testSecret, -1, 14)

	token, err := codec.Mint("id_subject1", authorization.RoleUser, "Hong Gildong", TokenClassAccess)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err, "expired but authentic token must decode")
	assert.Equal(t, "id_subject1", claims.SubjectID)
	assert.True(t, claims.Expired())

	expired, err := codec.IsExpired(token)
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestTokenCodec_DecodeEmpty(t *testing.T) {
	codec := newTestCodec()

	_, err := codec.Decode("")
	assert.ErrorIs(t, err, ErrEmptyToken)

	_, err = codec.Decode("   ")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestTokenCodec_DecodeMalformed(t *testing.T) {
	codec := newTestCodec()

	_, err := codec.Decode("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenCodec_RejectsForeignSignature(t *testing.T) {
	codec := newTestCodec()
	other := NewTokenCodec("another-secret", 30, 14)

	token, err := other.Mint("id_subject1", authorization.RoleUser, "Hong Gildong", TokenClassAccess)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenCodec_Projections(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.Mint("id_subject9", authorization.RoleBad, "Bad Actor", TokenClassRefresh)
	require.NoError(t, err)

	subject, err := codec.SubjectOf(token)
	require.NoError(t, err)
	assert.Equal(t, "id_subject9", subject)

	role, err := codec.RoleOf(token)
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleBad, role)

	class, err := codec.ClassOf(token)
	require.NoError(t, err)
	assert.Equal(t, TokenClassRefresh, class)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, hasher.Verify("secret-password", hash))
	assert.Error(t, hasher.Verify("wrong-password", hash))
	assert.Error(t, hasher.Verify("secret-password", "not-a-hash"))
}
