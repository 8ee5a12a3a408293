package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"messenger-service/internal/db"
	"messenger-service/internal/models"
)

// CommunityRepository abstracts community persistence.
type CommunityRepository interface {
	NameExists(ctx context.Context, name string) (bool, error)
	CreateCommunity(ctx context.Context, params models.CreateCommunityParams) (models.Community, error)
}

// CommunityRepo is a sqlx implementation of CommunityRepository.
type CommunityRepo struct {
	db *sqlx.DB
}

// NewCommunityRepo constructs a CommunityRepo.
func NewCommunityRepo(db *sqlx.DB) *CommunityRepo {
	return &CommunityRepo{db: db}
}

func (r *CommunityRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM communities WHERE name=$1)`, name)
	return exists, err
}

// CreateCommunity stores the optional image and the community atomically.
func (r *CommunityRepo) CreateCommunity(ctx context.Context, params models.CreateCommunityParams) (models.Community, error) {
	var community models.Community
	err := db.WithTx(ctx, r.db, "community.create", func(tx *sqlx.Tx) error {
		var imageID *int
		if params.Image != nil {
			id, err := insertFile(ctx, tx, *params.Image)
			if err != nil {
				return err
			}
			imageID = &id
		}
		err := tx.GetContext(ctx, &community, `INSERT INTO communities (name, description, image_id, created_by) VALUES ($1, $2, $3, $4)
			RETURNING id, name, description, image_id, created_by`, params.Name, params.Description, imageID, params.CreatedBy)
		if isUniqueViolation(err) {
			return ErrCommunityNameTaken
		}
		return err
	})
	if err != nil {
		return models.Community{}, err
	}
	return community, nil
}
