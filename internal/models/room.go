package models

import "time"

type Room struct {
	ID           int    `db:"room_id" json:"room_id"`
	Name         string `db:"room_name" json:"room_name"`
	ImageID      *int   `db:"room_image_id" json:"-"`
	MembersCount int    `db:"members_count" json:"members_count"`
}

type CreateRoomParams struct {
	Name      string
	MemberIDs []int
	Image     *File
}

// RoomInfo is a room as seen by one of its readers.
type RoomInfo struct {
	Room
	LastMessage          *string    `db:"last_message" json:"last_message"`
	Timestamp            *time.Time `db:"timestamp" json:"timestamp"`
	UnreadMessagesAmount int        `db:"unread_messages_amount" json:"unread_messages_amount"`
	IsMember             bool       `db:"is_member" json:"is_member"`
}

// NormalizeMembers puts the creator first and drops duplicates and non-positive ids.
func NormalizeMembers(creatorID int, ids []int) []int {
	seen := map[int]struct{}{creatorID: {}}
	members := []int{creatorID}
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	return members
}
