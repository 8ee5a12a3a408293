package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"messenger-service/internal/db"
	"messenger-service/internal/models"
)

const messageColumns = `id, send_from_id, send_to_id, room_id, message_text, timestamp, is_read`

// MessageRepository abstracts direct and room message persistence.
type MessageRepository interface {
	ListDirectMessages(ctx context.Context, userID, otherID, limit, offset int) ([]models.Message, error)
	CountDirectMessages(ctx context.Context, userID, otherID int) (int, error)
	CountUnreadDirect(ctx context.Context, userID, fromID int) (int, error)
	SendDirectMessage(ctx context.Context, fromID, toID int, text string) (models.Message, error)
	MarkDirectRead(ctx context.Context, userID, fromID int) (int64, error)

	ListRoomMessages(ctx context.Context, roomID, limit, offset int) ([]models.Message, error)
	CountRoomMessages(ctx context.Context, roomID int) (int, error)
	CountUnreadRoom(ctx context.Context, userID, roomID int) (int, error)
	SendRoomMessage(ctx context.Context, fromID, roomID int, text string) (models.Message, error)
	MarkRoomRead(ctx context.Context, userID, roomID int) (int64, error)
}

// MessageRepo is a sqlx implementation of MessageRepository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// ListDirectMessages returns a page of the conversation, oldest first.
func (r *MessageRepo) ListDirectMessages(ctx context.Context, userID, otherID, limit, offset int) ([]models.Message, error) {
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, `SELECT `+messageColumns+` FROM messages
		WHERE (send_from_id=$1 AND send_to_id=$2) OR (send_from_id=$2 AND send_to_id=$1)
		ORDER BY timestamp, id LIMIT $3 OFFSET $4`, userID, otherID, limit, offset)
	return msgs, err
}

func (r *MessageRepo) CountDirectMessages(ctx context.Context, userID, otherID int) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM messages
		WHERE (send_from_id=$1 AND send_to_id=$2) OR (send_from_id=$2 AND send_to_id=$1)`, userID, otherID)
	return n, err
}

// CountUnreadDirect counts messages from fromID that userID has not read.
func (r *MessageRepo) CountUnreadDirect(ctx context.Context, userID, fromID int) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM messages WHERE send_from_id=$1 AND send_to_id=$2 AND is_read=FALSE`, fromID, userID)
	return n, err
}

// SendDirectMessage stores a message and opens the dialog if needed.
func (r *MessageRepo) SendDirectMessage(ctx context.Context, fromID, toID int, text string) (models.Message, error) {
	if fromID == toID {
		return models.Message{}, ErrSelfDialog
	}
	var msg models.Message
	err := db.WithTx(ctx, r.db, "message.send_direct", func(tx *sqlx.Tx) error {
		if _, err := insertDialog(ctx, tx, fromID, toID); err != nil {
			return err
		}
		return tx.GetContext(ctx, &msg, `INSERT INTO messages (send_from_id, send_to_id, message_text) VALUES ($1, $2, $3) RETURNING `+messageColumns, fromID, toID, text)
	})
	return msg, err
}

// MarkDirectRead marks everything fromID sent to userID as read.
func (r *MessageRepo) MarkDirectRead(ctx context.Context, userID, fromID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read=TRUE WHERE send_from_id=$1 AND send_to_id=$2 AND is_read=FALSE`, fromID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListRoomMessages returns a page of the room history, oldest first.
func (r *MessageRepo) ListRoomMessages(ctx context.Context, roomID, limit, offset int) ([]models.Message, error) {
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, `SELECT `+messageColumns+` FROM messages WHERE room_id=$1 ORDER BY timestamp, id LIMIT $2 OFFSET $3`, roomID, limit, offset)
	return msgs, err
}

func (r *MessageRepo) CountRoomMessages(ctx context.Context, roomID int) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM messages WHERE room_id=$1`, roomID)
	return n, err
}

func (r *MessageRepo) CountUnreadRoom(ctx context.Context, userID, roomID int) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM unread_message_by WHERE unread_by=$1 AND room_id=$2`, userID, roomID)
	return n, err
}

// SendRoomMessage stores a room message and marks it unread for every other member.
func (r *MessageRepo) SendRoomMessage(ctx context.Context, fromID, roomID int, text string) (models.Message, error) {
	var msg models.Message
	err := db.WithTx(ctx, r.db, "message.send_room", func(tx *sqlx.Tx) error {
		var member bool
		if err := tx.GetContext(ctx, &member, `SELECT EXISTS(SELECT 1 FROM room_members WHERE room_id=$1 AND user_id=$2)`, roomID, fromID); err != nil {
			return err
		}
		if !member {
			return ErrNotRoomMember
		}
		if err := tx.GetContext(ctx, &msg, `INSERT INTO messages (send_from_id, room_id, message_text) VALUES ($1, $2, $3) RETURNING `+messageColumns, fromID, roomID, text); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO unread_message_by (message_id, room_id, unread_by)
			SELECT $1, room_id, user_id FROM room_members WHERE room_id=$2 AND user_id<>$3`, msg.ID, roomID, fromID)
		return err
	})
	return msg, err
}

// MarkRoomRead clears the caller's unread markers in a room.
func (r *MessageRepo) MarkRoomRead(ctx context.Context, userID, roomID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM unread_message_by WHERE unread_by=$1 AND room_id=$2`, userID, roomID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
