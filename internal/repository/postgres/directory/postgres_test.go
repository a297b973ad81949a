package directory

import (
	"context"
	"errors"
	"regexp"
	"testing"

	directorydomain "care-hub-go/internal/domain/directory"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return NewPostgres(gormDB), mock
}

func TestCountTeamExcludesEditedUser(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE \(role = \$1 AND leader_id = \$2\) AND id <> \$3`).
		WithArgs("volunteer", "L001", "V5").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountTeam(context.Background(), "L001", "V5")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountTeamWithoutExclusion(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE role = \$1 AND leader_id = \$2`).
		WithArgs("volunteer", "L001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountTeam(context.Background(), "L001", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserMapsNotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUser(context.Background(), "missing")
	assert.True(t, errors.Is(err, directorydomain.ErrUserNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollsBackOnError(t *testing.T) {
	repo, mock := setupRepo(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext($1))`)).
		WithArgs(directoryLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(tx directorydomain.Repository) error {
		require.NoError(t, tx.LockDirectory(context.Background()))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUserMissingRow(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SaveUser(context.Background(), &directorydomain.User{ID: "ghost", Name: "x"})
	assert.ErrorIs(t, err, directorydomain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
