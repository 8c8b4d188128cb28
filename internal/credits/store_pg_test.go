package credits

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGStoreDeductLocksAndUpdates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT credits FROM users WHERE id = \\$1 FOR UPDATE").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(5))
	mock.ExpectExec("UPDATE users SET credits").
		WithArgs("u1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := NewPGStore(db).Deduct(context.Background(), "u1", 2, false)
	require.NoError(t, err)
	assert.Equal(t, 3, balance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreDeductInsufficientRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT credits FROM users").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(1))
	mock.ExpectRollback()

	balance, err := NewPGStore(db).Deduct(context.Background(), "u1", 2, false)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, 1, balance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users SET credits = credits \\+ \\$2").
		WithArgs("u1", 4).
		WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(9))
	mock.ExpectCommit()

	balance, err := NewPGStore(db).Add(context.Background(), "u1", 4)
	require.NoError(t, err)
	assert.Equal(t, 9, balance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreBalanceUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT credits FROM users").WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err = NewPGStore(db).Balance(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)
}
