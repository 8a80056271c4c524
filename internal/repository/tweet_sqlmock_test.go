package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

// The like increment must be a single statement so concurrent likes from
// different sessions never lose an update.
func TestIncrementLikesIsSingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTweetRepository(db)

	mock.ExpectQuery(`UPDATE tweets SET likes = likes \+ 1, updated_at = \$1 WHERE id = \$2 RETURNING likes`).
		WithArgs(sqlmock.AnyArg(), 7).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(4))

	likes, err := repo.IncrementLikes(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementLikesNoRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTweetRepository(db)

	mock.ExpectQuery(`UPDATE tweets SET likes = likes \+ 1`).
		WithArgs(sqlmock.AnyArg(), 99).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}))

	_, err := repo.IncrementLikes(context.Background(), 99)
	assert.EqualError(t, err, "Tweet not found")
}
