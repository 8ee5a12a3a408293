package models

import "time"

// Message is addressed either to a user (SendToID) or to a room (RoomID).
type Message struct {
	ID         int       `db:"id" json:"id"`
	SendFromID int       `db:"send_from_id" json:"send_from_id"`
	SendToID   *int      `db:"send_to_id" json:"send_to_id,omitempty"`
	RoomID     *int      `db:"room_id" json:"room_id,omitempty"`
	Text       string    `db:"message_text" json:"message_text"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
	IsRead     bool      `db:"is_read" json:"is_read"`
}
