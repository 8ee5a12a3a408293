package models

import (
	"sort"
	"time"
)

// NoID marks the unused side of a DialogListItem.
const NoID = -1

// DialogListItem is one row of the merged dialog list: either a direct
// dialog partner (RoomID == NoID) or a room (ID == NoID).
type DialogListItem struct {
	ID                   int        `db:"id" json:"id"`
	FirstName            string     `db:"first_name" json:"first_name,omitempty"`
	LastName             string     `db:"last_name" json:"last_name,omitempty"`
	RoomID               int        `db:"room_id" json:"room_id"`
	RoomName             string     `db:"room_name" json:"room_name,omitempty"`
	LastMessage          *string    `db:"last_message" json:"last_message"`
	Timestamp            *time.Time `db:"timestamp" json:"timestamp"`
	UnreadMessagesAmount int        `db:"unread_messages_amount" json:"unread_messages_amount"`
	IsOnline             bool       `db:"is_online" json:"is_online"`
}

func (d DialogListItem) IsRoom() bool {
	return d.RoomID != NoID
}

// MergeDialogList concatenates dialogs and rooms and orders them by latest
// activity, newest first. Items without messages go last.
func MergeDialogList(dialogs, rooms []DialogListItem) []DialogListItem {
	merged := make([]DialogListItem, 0, len(dialogs)+len(rooms))
	merged = append(merged, dialogs...)
	merged = append(merged, rooms...)

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i].Timestamp, merged[j].Timestamp
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return merged
}
