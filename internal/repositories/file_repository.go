package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"messenger-service/internal/db"
	"messenger-service/internal/models"
)

// FileRepository abstracts image storage for users and rooms.
type FileRepository interface {
	GetUserImage(ctx context.Context, userID int) (models.File, error)
	SaveUserImage(ctx context.Context, userID int, image models.File) (models.File, error)
	GetRoomImage(ctx context.Context, roomID int) (models.File, error)
}

// FileRepo is a sqlx implementation of FileRepository.
type FileRepo struct {
	db *sqlx.DB
}

// NewFileRepo constructs a FileRepo.
func NewFileRepo(db *sqlx.DB) *FileRepo {
	return &FileRepo{db: db}
}

// GetUserImage returns the avatar of a user.
func (r *FileRepo) GetUserImage(ctx context.Context, userID int) (models.File, error) {
	var file models.File
	err := r.db.GetContext(ctx, &file, `SELECT f.file_id, f.type, f.data FROM files f INNER JOIN users u ON u.user_image_id = f.file_id WHERE u.id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.File{}, ErrImageNotFound
	}
	return file, err
}

// GetRoomImage returns the picture of a room.
func (r *FileRepo) GetRoomImage(ctx context.Context, roomID int) (models.File, error) {
	var file models.File
	err := r.db.GetContext(ctx, &file, `SELECT f.file_id, f.type, f.data FROM files f INNER JOIN rooms r ON r.room_image_id = f.file_id WHERE r.room_id=$1`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.File{}, ErrImageNotFound
	}
	return file, err
}

// SaveUserImage stores a new avatar and drops the previous one.
func (r *FileRepo) SaveUserImage(ctx context.Context, userID int, image models.File) (models.File, error) {
	err := db.WithTx(ctx, r.db, "user.save_image", func(tx *sqlx.Tx) error {
		var previous *int
		if err := tx.GetContext(ctx, &previous, `SELECT user_image_id FROM users WHERE id=$1 FOR UPDATE`, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}

		id, err := insertFile(ctx, tx, image)
		if err != nil {
			return err
		}
		image.ID = id

		if _, err := tx.ExecContext(ctx, `UPDATE users SET user_image_id=$1 WHERE id=$2`, id, userID); err != nil {
			return err
		}
		if previous != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE file_id=$1`, *previous); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.File{}, err
	}
	return image, nil
}

func insertFile(ctx context.Context, tx *sqlx.Tx, file models.File) (int, error) {
	var id int
	if err := tx.QueryRowxContext(ctx, `INSERT INTO files (type, data) VALUES ($1, $2) RETURNING file_id`, file.Type, file.Data).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrImageUploadFailed, err)
	}
	return id, nil
}
