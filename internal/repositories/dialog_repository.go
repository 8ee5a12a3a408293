package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"messenger-service/internal/db"
	"messenger-service/internal/models"
)

const dialogItemColumns = `u.id, u.first_name, u.last_name, -1 AS room_id, '' AS room_name,
	lm.message_text AS last_message, lm.timestamp AS timestamp,
	(SELECT count(*) FROM messages um WHERE um.send_from_id = u.id AND um.send_to_id = $1 AND um.is_read = FALSE) AS unread_messages_amount,
	EXISTS(SELECT 1 FROM online_users o WHERE o.id = u.id) AS is_online`

const lastDirectMessageJoin = `LEFT JOIN LATERAL (
		SELECT m.message_text, m.timestamp FROM messages m
		WHERE (m.send_from_id = u.id AND m.send_to_id = $1) OR (m.send_from_id = $1 AND m.send_to_id = u.id)
		ORDER BY m.timestamp DESC, m.id DESC LIMIT 1
	) lm ON TRUE`

// DialogRepository abstracts one-to-one dialog bookkeeping.
type DialogRepository interface {
	ClearEmptyDialogs(ctx context.Context, userID int) (int64, error)
	EnsureDialog(ctx context.Context, userID, otherID int) (bool, error)
	ListDialogs(ctx context.Context, userID int, search string) ([]models.DialogListItem, error)
	GetDialogListItem(ctx context.Context, userID, otherID int) (models.DialogListItem, error)
}

// DialogRepo is a sqlx implementation of DialogRepository.
type DialogRepo struct {
	db *sqlx.DB
}

// NewDialogRepo constructs a DialogRepo.
func NewDialogRepo(db *sqlx.DB) *DialogRepo {
	return &DialogRepo{db: db}
}

// ClearEmptyDialogs deletes dialogs opened by userID that never got a message.
func (r *DialogRepo) ClearEmptyDialogs(ctx context.Context, userID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dialogs d
		WHERE d.created_by = $1
		AND NOT EXISTS (
			SELECT 1 FROM messages m
			WHERE (m.send_from_id = d.first_id AND m.send_to_id = d.second_id)
			OR (m.send_from_id = d.second_id AND m.send_to_id = d.first_id)
		)`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// EnsureDialog creates both directed rows of a dialog unless it exists.
// It reports whether the dialog was created by this call.
func (r *DialogRepo) EnsureDialog(ctx context.Context, userID, otherID int) (bool, error) {
	if userID == otherID {
		return false, ErrSelfDialog
	}
	var created bool
	err := db.WithTx(ctx, r.db, "dialog.ensure", func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM dialogs WHERE first_id=$1 AND second_id=$2)`, userID, otherID); err != nil {
			return err
		}
		if exists {
			return nil
		}
		n, err := insertDialog(ctx, tx, userID, otherID)
		if err != nil {
			return err
		}
		created = n > 0
		return nil
	})
	return created, err
}

// ListDialogs returns the caller's dialog partners whose full name matches search.
// Empty dialogs opened by the partner stay hidden.
func (r *DialogRepo) ListDialogs(ctx context.Context, userID int, search string) ([]models.DialogListItem, error) {
	items := []models.DialogListItem{}
	err := r.db.SelectContext(ctx, &items, `SELECT `+dialogItemColumns+`
		FROM dialogs d
		INNER JOIN users u ON u.id = d.second_id
		`+lastDirectMessageJoin+`
		WHERE d.first_id = $1
		AND (lm.timestamp IS NOT NULL OR d.created_by = $1)
		AND (u.first_name || ' ' || u.last_name || ' ' || u.first_name) ILIKE $2`, userID, likePattern(search))
	return items, err
}

// GetDialogListItem returns a single dialog row for otherID.
func (r *DialogRepo) GetDialogListItem(ctx context.Context, userID, otherID int) (models.DialogListItem, error) {
	var item models.DialogListItem
	err := r.db.GetContext(ctx, &item, `SELECT `+dialogItemColumns+`
		FROM users u
		`+lastDirectMessageJoin+`
		WHERE u.id = $2`, userID, otherID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DialogListItem{}, ErrUserNotFound
	}
	return item, err
}

func insertDialog(ctx context.Context, tx *sqlx.Tx, creatorID, otherID int) (int64, error) {
	res, err := tx.ExecContext(ctx, `INSERT INTO dialogs (first_id, second_id, created_by) VALUES ($1, $2, $1), ($2, $1, $1) ON CONFLICT DO NOTHING`, creatorID, otherID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return res.RowsAffected()
}
