package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewUserRepository(db), mock
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	repo, mock := setupMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "username", "admin", "points"}).
		AddRow(2, "alice", false, 7)
	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username = (.+)").
		WithArgs("alice", 1).
		WillReturnRows(rows)

	user, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, uint64(2), user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, 7, user.Points)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByUsernameNotFound(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username = (.+)").
		WithArgs("nobody", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "admin", "points"}))

	_, err := repo.FindByUsername("nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCount(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := repo.Count()
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryAdminExists(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE admin = (.+) AND id <> (.+)").
		WithArgs(true, uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	exists, err := repo.AdminExists(5)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDelete(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `users` WHERE `users`.`id` = (.+)").
		WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(4))
	require.NoError(t, mock.ExpectationsWereMet())
}
