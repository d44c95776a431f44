// Package model holds the gorm persistence models. They mirror the tables
// created by the migrations package and never leave the infra layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Email         string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	FavoriteColor string    `gorm:"type:varchar(120)"`
	PasswordHash  string    `gorm:"type:varchar(128);not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
