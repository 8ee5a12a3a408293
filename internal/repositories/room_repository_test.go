package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-service/internal/models"
)

var (
	insertFileSQL    = regexp.QuoteMeta(`INSERT INTO files (type, data) VALUES ($1, $2) RETURNING file_id`)
	insertRoomSQL    = regexp.QuoteMeta(`INSERT INTO rooms (room_name, room_image_id) VALUES ($1, $2) RETURNING room_id`)
	insertMembersSQL = regexp.QuoteMeta(`INSERT INTO room_members (room_id, user_id) SELECT $1, unnest($2::int[])`)
)

func TestCreateRoomWithImage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(insertFileSQL).WithArgs("image/png", "AAAA").
		WillReturnRows(sqlmock.NewRows([]string{"file_id"}).AddRow(7))
	mock.ExpectQuery(insertRoomSQL).WithArgs("Team", 7).
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(42))
	mock.ExpectExec(insertMembersSQL).WithArgs(42, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	roomID, err := repo.CreateRoom(context.Background(), models.CreateRoomParams{
		Name:      "Team",
		MemberIDs: []int{1, 2},
		Image:     &models.File{Type: "image/png", Data: "AAAA"},
	})

	require.NoError(t, err)
	assert.Equal(t, 42, roomID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomWithoutImageSkipsFileInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(insertRoomSQL).WithArgs("Team", nil).
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(3))
	mock.ExpectExec(insertMembersSQL).WithArgs(3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	roomID, err := repo.CreateRoom(context.Background(), models.CreateRoomParams{Name: "Team", MemberIDs: []int{1}})

	require.NoError(t, err)
	assert.Equal(t, 3, roomID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomRollsBackOnImageFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(insertFileSQL).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreateRoom(context.Background(), models.CreateRoomParams{
		Name:      "Team",
		MemberIDs: []int{1, 2},
		Image:     &models.File{Type: "image/png", Data: "AAAA"},
	})

	require.ErrorIs(t, err, ErrImageUploadFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomRollsBackOnRoomInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(insertFileSQL).WillReturnRows(sqlmock.NewRows([]string{"file_id"}).AddRow(7))
	mock.ExpectQuery(insertRoomSQL).WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	_, err := repo.CreateRoom(context.Background(), models.CreateRoomParams{
		Name:      "Team",
		MemberIDs: []int{1, 2},
		Image:     &models.File{Type: "image/png", Data: "AAAA"},
	})

	require.ErrorIs(t, err, ErrRoomCreationFailed)
	assert.NotErrorIs(t, err, ErrImageUploadFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomRollsBackOnMemberInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(insertRoomSQL).WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(9))
	mock.ExpectExec(insertMembersSQL).WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	_, err := repo.CreateRoom(context.Background(), models.CreateRoomParams{Name: "Team", MemberIDs: []int{1, 999}})

	require.ErrorIs(t, err, ErrRoomMembershipFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomRollsBackOnPartialMembership(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(insertRoomSQL).WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(9))
	mock.ExpectExec(insertMembersSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	_, err := repo.CreateRoom(context.Background(), models.CreateRoomParams{Name: "Team", MemberIDs: []int{1, 2}})

	require.ErrorIs(t, err, ErrRoomMembershipFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoomNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectQuery(`FROM rooms r WHERE r.room_id=\$1`).WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_name", "room_image_id", "members_count"}))

	_, err := repo.GetRoom(context.Background(), 5)
	require.ErrorIs(t, err, ErrRoomNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoomCountsMembers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectQuery(`FROM rooms r WHERE r.room_id=\$1`).WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_name", "room_image_id", "members_count"}).AddRow(42, "Team", nil, 2))

	room, err := repo.GetRoom(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, models.Room{ID: 42, Name: "Team", MembersCount: 2}, room)
	require.NoError(t, mock.ExpectationsWereMet())
}
