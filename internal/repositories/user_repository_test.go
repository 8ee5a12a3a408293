package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-service/internal/models"
)

var userColumns = []string{"id", "login", "password", "first_name", "last_name", "role", "user_image_id"}

func TestCreateUserReadsBackRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (login, password, first_name, last_name)`)).
		WithArgs("alice", "hash", "Alice", "Smith").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id=$1`)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "alice", "hash", "Alice", "Smith", "user", nil))

	user, err := repo.CreateUser(context.Background(), models.CreateUserParams{
		Login: "alice", PasswordHash: "hash", FirstName: "Alice", LastName: "Smith",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "user", user.Role)
	assert.Nil(t, user.ImageID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateLogin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), models.CreateUserParams{Login: "alice"})
	require.ErrorIs(t, err, ErrDuplicateLogin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByLoginNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE login=$1`)).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByLogin(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsersFriends(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	cols := []string{"id", "first_name", "last_name", "is_online", "is_friends",
		"is_requested_friends_from_auth_user", "is_requested_friends_to_auth_user"}
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE u.id IN (SELECT first_id FROM friends WHERE second_id = $1)`)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(2, "Bob", "Jones", true, true, false, false))

	users, err := repo.ListUsers(context.Background(), 1, models.UserListFriends)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsFriends)
	assert.True(t, users[0].IsOnline)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsersUnknownCategory(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewUserRepo(db)

	_, err := repo.ListUsers(context.Background(), 1, models.UserListCategory("NOPE"))
	require.Error(t, err)
}

func TestSetOnlineIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	query := regexp.QuoteMeta(`INSERT INTO online_users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`)
	mock.ExpectExec(query).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetOnline(context.Background(), 1))
	require.NoError(t, repo.SetOnline(context.Background(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}
