package repositories

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrDuplicateLogin         = errors.New("login already taken")
	ErrSelfDialog             = errors.New("cannot open a dialog with self")
	ErrImageNotFound          = errors.New("image not found")
	ErrImageUploadFailed      = errors.New("image upload failed")
	ErrRoomNotFound           = errors.New("room not found")
	ErrRoomCreationFailed     = errors.New("room creation failed")
	ErrRoomMembershipFailed   = errors.New("room membership insert failed")
	ErrNotRoomMember          = errors.New("user is not a room member")
	ErrAlreadyFriends         = errors.New("users are already friends")
	ErrFriendRequestExists    = errors.New("friend request already exists")
	ErrFriendRequestNotFound  = errors.New("friend request not found")
	ErrFriendshipInconsistent = errors.New("friendship rows are inconsistent")
	ErrCommunityNameTaken     = errors.New("community name already taken")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pqCode(err) == pqForeignKeyViolation
}

// likePattern turns free text into an ILIKE pattern matching it anywhere.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(search)) + "%"
}
