package mysql

import (
	"context"
	"testing"
	"time"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("leo", "leo@example.com", "hash", model.RoleUser).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err = repo.Create(context.Background(), &model.User{Username: "leo", Email: "leo@example.com", PasswordHash: "hash"})
	assert.True(t, errors.Is(err, errors.ErrUserExists))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	columns := []string{"id", "username", "email", "password_hash", "role", "created_at"}
	mock.ExpectQuery("SELECT .* FROM users WHERE username = ?").WithArgs("leo").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "leo", "leo@example.com", "hash", "admin", time.Now()))
	mock.ExpectQuery("SELECT .* FROM users WHERE username = ?").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(columns))

	user, err := repo.FindByUsername(context.Background(), "leo")
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.True(t, user.IsAdmin())

	user, err = repo.FindByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectExec("DELETE FROM users").WithArgs(9).WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), 9)
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
}
