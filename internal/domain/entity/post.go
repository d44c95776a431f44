package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog post. Author is free text and is not linked to a User.
type Post struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Author    string
	Slug      string // Supplied by the author, never derived from the title.
	CreatedAt time.Time
	UpdatedAt time.Time
}
