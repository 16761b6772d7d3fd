package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"remory/internal/infrastructure/persistence/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.IdentityModel{},
		&models.LinkedProviderModel{},
		&models.RefreshCredentialModel{},
		&models.ChatMessageModel{},
	))
	return db
}

func TestRefreshCredentialRepository_SaveOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshCredentialRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "id_sub1", "token-one"))
	require.NoError(t, repo.Save(ctx, "id_sub1", "token-two"))

	cred, err := repo.Find(ctx, "id_sub1")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "token-two", cred.Token)

	var count int64
	require.NoError(t, db.Model(&models.RefreshCredentialModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "save must replace, never append")
}

func TestRefreshCredentialRepository_FindAbsent(t *testing.T) {
	repo := NewRefreshCredentialRepository(newTestDB(t))

	cred, err := repo.Find(context.Background(), "id_missing")
	require.NoError(t, err)
	assert.Nil(t, cred)
}

func TestRefreshCredentialRepository_FindSubjectID(t *testing.T) {
	repo := NewRefreshCredentialRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "id_sub1", "token-one"))

	subject, err := repo.FindSubjectID(ctx, "id_sub1", "token-one")
	require.NoError(t, err)
	assert.Equal(t, "id_sub1", subject)

	// A stale token value must not match the slot.
	subject, err = repo.FindSubjectID(ctx, "id_sub1", "token-stale")
	require.NoError(t, err)
	assert.Empty(t, subject)
}

func TestRefreshCredentialRepository_Delete(t *testing.T) {
	repo := NewRefreshCredentialRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "id_sub1", "token-one"))
	require.NoError(t, repo.Delete(ctx, "id_sub1"))

	cred, err := repo.Find(ctx, "id_sub1")
	require.NoError(t, err)
	assert.Nil(t, cred)

	// Deleting an absent slot is not an error.
	assert.NoError(t, repo.Delete(ctx, "id_sub1"))
}
