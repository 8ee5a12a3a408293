package models

// File is an opaque image blob; Data is usually a base64 payload.
type File struct {
	ID   int    `db:"file_id" json:"-"`
	Type string `db:"type" json:"type" binding:"required"`
	Data string `db:"data" json:"data" binding:"required"`
}
