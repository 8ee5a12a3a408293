package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"messenger-service/internal/db"
)

// FriendRepository abstracts friend requests and the symmetric friendship relation.
type FriendRepository interface {
	AddRequest(ctx context.Context, fromID, toID int) error
	RemoveRequest(ctx context.Context, fromID, toID int) (bool, error)
	AcceptRequest(ctx context.Context, fromID, toID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) (bool, error)
}

// FriendRepo is a sqlx implementation of FriendRepository.
type FriendRepo struct {
	db *sqlx.DB
}

// NewFriendRepo constructs a FriendRepo.
func NewFriendRepo(db *sqlx.DB) *FriendRepo {
	return &FriendRepo{db: db}
}

// AddRequest records a pending request unless the users are already friends
// in either direction.
func (r *FriendRepo) AddRequest(ctx context.Context, fromID, toID int) error {
	var friends bool
	if err := r.db.GetContext(ctx, &friends, `SELECT EXISTS(SELECT 1 FROM friends
		WHERE (first_id=$1 AND second_id=$2) OR (first_id=$2 AND second_id=$1))`, fromID, toID); err != nil {
		return err
	}
	if friends {
		return ErrAlreadyFriends
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO friend_requests (request_from, request_to) VALUES ($1, $2)`, fromID, toID)
	switch {
	case isUniqueViolation(err):
		return ErrFriendRequestExists
	case isForeignKeyViolation(err):
		return ErrUserNotFound
	}
	return err
}

// RemoveRequest deletes a pending request and reports whether one existed.
func (r *FriendRepo) RemoveRequest(ctx context.Context, fromID, toID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE request_from=$1 AND request_to=$2`, fromID, toID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// AcceptRequest consumes the request fromID -> toID and stores both
// directions of the friendship. A crossed request toID -> fromID is dropped too.
func (r *FriendRepo) AcceptRequest(ctx context.Context, fromID, toID int) error {
	return db.WithTx(ctx, r.db, "friend.accept", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM friend_requests WHERE request_from=$1 AND request_to=$2`, fromID, toID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrFriendRequestNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM friend_requests WHERE request_from=$1 AND request_to=$2`, toID, fromID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO friends (first_id, second_id) VALUES ($1, $2), ($2, $1) ON CONFLICT DO NOTHING`, fromID, toID)
		return err
	})
}

// RemoveFriend deletes both directions of a friendship. It reports false when
// the users were not friends and fails without deleting anything when only
// one direction is stored.
func (r *FriendRepo) RemoveFriend(ctx context.Context, userID, friendID int) (bool, error) {
	var removed bool
	err := db.WithTx(ctx, r.db, "friend.remove", func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, `SELECT count(*) FROM friends
			WHERE (first_id=$1 AND second_id=$2) OR (first_id=$2 AND second_id=$1)`, userID, friendID); err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM friends
			WHERE (first_id=$1 AND second_id=$2) OR (first_id=$2 AND second_id=$1)`, userID, friendID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 2 {
			return fmt.Errorf("%w: deleted %d rows", ErrFriendshipInconsistent, n)
		}
		removed = true
		return nil
	})
	return removed, err
}
