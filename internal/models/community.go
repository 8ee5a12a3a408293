package models

type Community struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	ImageID     *int   `db:"image_id" json:"-"`
	CreatedBy   int    `db:"created_by" json:"created_by"`
}

type CreateCommunityParams struct {
	Name        string
	Description string
	CreatedBy   int
	Image       *File
}
