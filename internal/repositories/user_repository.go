package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"messenger-service/internal/models"
)

// userSummaryColumns projects users u relative to the caller bound to $1.
const userSummaryColumns = `u.id, u.first_name, u.last_name,
	EXISTS(SELECT 1 FROM online_users o WHERE o.id = u.id) AS is_online,
	EXISTS(SELECT 1 FROM friends f WHERE f.first_id = u.id AND f.second_id = $1) AS is_friends,
	EXISTS(SELECT 1 FROM friend_requests fr WHERE fr.request_from = $1 AND fr.request_to = u.id) AS is_requested_friends_from_auth_user,
	EXISTS(SELECT 1 FROM friend_requests fr WHERE fr.request_from = u.id AND fr.request_to = $1) AS is_requested_friends_to_auth_user`

var userListQueries = map[models.UserListCategory]string{
	models.UserListAll: `SELECT ` + userSummaryColumns + ` FROM users u
		WHERE u.id <> $1 ORDER BY u.first_name, u.last_name, u.id`,
	models.UserListFriends: `SELECT ` + userSummaryColumns + ` FROM users u
		WHERE u.id IN (SELECT first_id FROM friends WHERE second_id = $1) ORDER BY u.first_name, u.last_name, u.id`,
	models.UserListRequestsTo: `SELECT ` + userSummaryColumns + ` FROM users u
		WHERE u.id IN (SELECT request_from FROM friend_requests WHERE request_to = $1) ORDER BY u.first_name, u.last_name, u.id`,
	models.UserListRequestsFrom: `SELECT ` + userSummaryColumns + ` FROM users u
		WHERE u.id IN (SELECT request_to FROM friend_requests WHERE request_from = $1) ORDER BY u.first_name, u.last_name, u.id`,
}

// UserRepository abstracts user persistence and presence.
type UserRepository interface {
	LoginExists(ctx context.Context, login string) (bool, error)
	CreateUser(ctx context.Context, params models.CreateUserParams) (models.User, error)
	GetByLogin(ctx context.Context, login string) (models.User, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	GetSummary(ctx context.Context, authUserID, userID int) (models.UserSummary, error)
	ListUsers(ctx context.Context, authUserID int, category models.UserListCategory) ([]models.UserSummary, error)
	SetOnline(ctx context.Context, userID int) error
	SetOffline(ctx context.Context, userID int) error
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) LoginExists(ctx context.Context, login string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE login=$1)`, login)
	return exists, err
}

// CreateUser inserts a user and reads the stored row back.
func (r *UserRepo) CreateUser(ctx context.Context, params models.CreateUserParams) (models.User, error) {
	var id int
	err := r.db.QueryRowxContext(ctx, `INSERT INTO users (login, password, first_name, last_name) VALUES ($1, $2, $3, $4) RETURNING id`,
		params.Login, params.PasswordHash, params.FirstName, params.LastName).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicateLogin
		}
		return models.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, login, password, first_name, last_name, role, user_image_id FROM users WHERE login=$1`, login)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, login, password, first_name, last_name, role, user_image_id FROM users WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetSummary returns a user with presence and relationship flags relative to authUserID.
func (r *UserRepo) GetSummary(ctx context.Context, authUserID, userID int) (models.UserSummary, error) {
	var user models.UserSummary
	err := r.db.GetContext(ctx, &user, `SELECT `+userSummaryColumns+` FROM users u WHERE u.id=$2`, authUserID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserSummary{}, ErrUserNotFound
	}
	return user, err
}

// ListUsers runs the fixed query bound to category.
func (r *UserRepo) ListUsers(ctx context.Context, authUserID int, category models.UserListCategory) ([]models.UserSummary, error) {
	query, ok := userListQueries[category]
	if !ok {
		return nil, fmt.Errorf("unknown user list category %q", category)
	}
	users := []models.UserSummary{}
	err := r.db.SelectContext(ctx, &users, query, authUserID)
	return users, err
}

func (r *UserRepo) SetOnline(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO online_users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, userID)
	return err
}

func (r *UserRepo) SetOffline(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM online_users WHERE id=$1`, userID)
	return err
}
