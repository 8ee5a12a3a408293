package models

import "fmt"

// User is a row of the users table.
type User struct {
	ID        int    `db:"id" json:"id"`
	Login     string `db:"login" json:"login"`
	Password  string `db:"password" json:"-"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Role      string `db:"role" json:"role"`
	ImageID   *int   `db:"user_image_id" json:"-"`
}

type CreateUserParams struct {
	Login        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// AuthUser is returned by login and registration.
type AuthUser struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// UserSummary is a user as seen by the authenticated caller.
type UserSummary struct {
	ID                      int    `db:"id" json:"id"`
	FirstName               string `db:"first_name" json:"first_name"`
	LastName                string `db:"last_name" json:"last_name"`
	IsOnline                bool   `db:"is_online" json:"is_online"`
	IsFriends               bool   `db:"is_friends" json:"is_friends"`
	IsRequestedFromAuthUser bool   `db:"is_requested_friends_from_auth_user" json:"is_requested_friends_from_auth_user"`
	IsRequestedToAuthUser   bool   `db:"is_requested_friends_to_auth_user" json:"is_requested_friends_to_auth_user"`
}

// UserListCategory selects which users a list query returns.
type UserListCategory string

const (
	UserListAll          UserListCategory = "ALL"
	UserListFriends      UserListCategory = "FRIENDS"
	UserListRequestsTo   UserListCategory = "REQUESTS_TO"
	UserListRequestsFrom UserListCategory = "REQUESTS_FROM"
)

func ParseUserListCategory(s string) (UserListCategory, error) {
	switch c := UserListCategory(s); c {
	case UserListAll, UserListFriends, UserListRequestsTo, UserListRequestsFrom:
		return c, nil
	case "":
		return UserListAll, nil
	default:
		return "", fmt.Errorf("unknown user list category %q", s)
	}
}
