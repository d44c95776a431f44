package model

import (
	"time"

	"github.com/google/uuid"
)

// PostModel mirrors the 'posts' table.
type PostModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	Author    string    `gorm:"type:varchar(255);not null"`
	Slug      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}
