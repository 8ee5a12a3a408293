package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageRowColumns = []string{"id", "send_from_id", "send_to_id", "room_id", "message_text", "timestamp", "is_read"}

func TestSendRoomMessageMarksOtherMembersUnread(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM room_members`)).WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO messages (send_from_id, room_id, message_text)`)).WithArgs(1, 42, "hello").
		WillReturnRows(sqlmock.NewRows(messageRowColumns).AddRow(10, 1, nil, 42, "hello", now, false))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO unread_message_by`)).WithArgs(10, 42, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg, err := repo.SendRoomMessage(context.Background(), 1, 42, "hello")
	require.NoError(t, err)
	assert.Equal(t, 10, msg.ID)
	require.NotNil(t, msg.RoomID)
	assert.Equal(t, 42, *msg.RoomID)
	assert.Nil(t, msg.SendToID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendRoomMessageRequiresMembership(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM room_members`)).WithArgs(42, 5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := repo.SendRoomMessage(context.Background(), 5, 42, "hello")
	require.ErrorIs(t, err, ErrNotRoomMember)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendDirectMessageOpensDialog(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO dialogs`)).WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO messages (send_from_id, send_to_id, message_text)`)).WithArgs(1, 2, "hi").
		WillReturnRows(sqlmock.NewRows(messageRowColumns).AddRow(11, 1, 2, nil, "hi", now, false))
	mock.ExpectCommit()

	msg, err := repo.SendDirectMessage(context.Background(), 1, 2, "hi")
	require.NoError(t, err)
	require.NotNil(t, msg.SendToID)
	assert.Equal(t, 2, *msg.SendToID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListDirectMessagesPaginates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY timestamp, id LIMIT $3 OFFSET $4`)).WithArgs(1, 2, 20, 40).
		WillReturnRows(sqlmock.NewRows(messageRowColumns))

	msgs, err := repo.ListDirectMessages(context.Background(), 1, 2, 20, 40)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRoomReadClearsMarkers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM unread_message_by WHERE unread_by=$1 AND room_id=$2`)).WithArgs(2, 42).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkRoomRead(context.Background(), 2, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
