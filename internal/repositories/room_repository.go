package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"messenger-service/internal/db"
	"messenger-service/internal/models"
)

// RoomRepository abstracts room persistence.
type RoomRepository interface {
	CreateRoom(ctx context.Context, params models.CreateRoomParams) (int, error)
	GetRoom(ctx context.Context, roomID int) (models.Room, error)
	GetRoomInfo(ctx context.Context, userID, roomID int) (models.RoomInfo, error)
	ListRooms(ctx context.Context, userID int, search string) ([]models.DialogListItem, error)
	ListMembers(ctx context.Context, userID, roomID int) ([]models.UserSummary, error)
	IsMember(ctx context.Context, roomID, userID int) (bool, error)
}

// RoomRepo is a sqlx implementation of RoomRepository.
type RoomRepo struct {
	db *sqlx.DB
}

// NewRoomRepo constructs a RoomRepo.
func NewRoomRepo(db *sqlx.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// CreateRoom stores the optional image, the room and all of its members in
// one transaction. Any failed step leaves no trace of the room.
func (r *RoomRepo) CreateRoom(ctx context.Context, params models.CreateRoomParams) (int, error) {
	var roomID int
	err := db.WithTx(ctx, r.db, "room.create", func(tx *sqlx.Tx) error {
		var imageID *int
		if params.Image != nil {
			id, err := insertFile(ctx, tx, *params.Image)
			if err != nil {
				return err
			}
			imageID = &id
		}

		if err := tx.QueryRowxContext(ctx, `INSERT INTO rooms (room_name, room_image_id) VALUES ($1, $2) RETURNING room_id`, params.Name, imageID).Scan(&roomID); err != nil {
			return fmt.Errorf("%w: %w", ErrRoomCreationFailed, err)
		}

		members := make([]int64, len(params.MemberIDs))
		for i, id := range params.MemberIDs {
			members[i] = int64(id)
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO room_members (room_id, user_id) SELECT $1, unnest($2::int[])`, roomID, pq.Array(members))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRoomMembershipFailed, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRoomMembershipFailed, err)
		}
		if n != int64(len(members)) {
			return fmt.Errorf("%w: inserted %d of %d members", ErrRoomMembershipFailed, n, len(members))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return roomID, nil
}

func (r *RoomRepo) GetRoom(ctx context.Context, roomID int) (models.Room, error) {
	var room models.Room
	err := r.db.GetContext(ctx, &room, `SELECT r.room_id, r.room_name, r.room_image_id,
		(SELECT count(*) FROM room_members rm WHERE rm.room_id = r.room_id) AS members_count
		FROM rooms r WHERE r.room_id=$1`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

// GetRoomInfo returns the room with the caller's view of its activity.
func (r *RoomRepo) GetRoomInfo(ctx context.Context, userID, roomID int) (models.RoomInfo, error) {
	var info models.RoomInfo
	err := r.db.GetContext(ctx, &info, `SELECT r.room_id, r.room_name, r.room_image_id,
		(SELECT count(*) FROM room_members rm WHERE rm.room_id = r.room_id) AS members_count,
		lm.message_text AS last_message, lm.timestamp AS timestamp,
		(SELECT count(*) FROM unread_message_by ub WHERE ub.unread_by = $1 AND ub.room_id = r.room_id) AS unread_messages_amount,
		EXISTS(SELECT 1 FROM room_members rm WHERE rm.room_id = r.room_id AND rm.user_id = $1) AS is_member
		FROM rooms r
		LEFT JOIN LATERAL (
			SELECT m.message_text, m.timestamp FROM messages m
			WHERE m.room_id = r.room_id ORDER BY m.timestamp DESC, m.id DESC LIMIT 1
		) lm ON TRUE
		WHERE r.room_id=$2`, userID, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoomInfo{}, ErrRoomNotFound
	}
	return info, err
}

// ListRooms returns the caller's rooms as dialog list items.
func (r *RoomRepo) ListRooms(ctx context.Context, userID int, search string) ([]models.DialogListItem, error) {
	items := []models.DialogListItem{}
	err := r.db.SelectContext(ctx, &items, `SELECT -1 AS id, '' AS first_name, '' AS last_name, r.room_id, r.room_name,
		lm.message_text AS last_message, lm.timestamp AS timestamp,
		(SELECT count(*) FROM unread_message_by ub WHERE ub.unread_by = $1 AND ub.room_id = r.room_id) AS unread_messages_amount,
		FALSE AS is_online
		FROM rooms r
		INNER JOIN room_members rm ON rm.room_id = r.room_id AND rm.user_id = $1
		LEFT JOIN LATERAL (
			SELECT m.message_text, m.timestamp FROM messages m
			WHERE m.room_id = r.room_id ORDER BY m.timestamp DESC, m.id DESC LIMIT 1
		) lm ON TRUE
		WHERE r.room_name ILIKE $2`, userID, likePattern(search))
	return items, err
}

// ListMembers returns room members relative to the caller.
func (r *RoomRepo) ListMembers(ctx context.Context, userID, roomID int) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `SELECT `+userSummaryColumns+` FROM users u
		INNER JOIN room_members rm ON rm.user_id = u.id
		WHERE rm.room_id = $2 ORDER BY u.first_name, u.last_name, u.id`, userID, roomID)
	return users, err
}

func (r *RoomRepo) IsMember(ctx context.Context, roomID, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM room_members WHERE room_id=$1 AND user_id=$2)`, roomID, userID)
	return exists, err
}
