package auth

import (
	"context"
	"testing"

	"github.com/akeren/macro-app-api/internal/models"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) UserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewUserRepository(db)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "+15551112222", "Ada")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.FindByPhone(ctx, "+15551112222")
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)
}

func TestUserRepository_FindUnknown(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByPhone(context.Background(), "+10000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicatePhoneConflicts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "+15551112222", "Ada")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "+15551112222", "Grace")
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
}

func TestUserRepository_UpdateName(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "+15551112222", "Ada")
	require.NoError(t, err)

	updated, err := repo.UpdateName(ctx, "+15551112222", "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)

	_, err = repo.UpdateName(ctx, "+19999999999", "Nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
