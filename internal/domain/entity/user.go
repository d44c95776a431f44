// Package entity contains the core business objects of the blog.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered person. The plaintext password never reaches this type;
// only its digest is kept.
type User struct {
	ID            uuid.UUID // Generated on create (UUIDv7, so ids sort by creation time).
	Name          string    // Display name, required.
	Email         string    // Unique across users.
	FavoriteColor string    // Optional.
	PasswordHash  string    // bcrypt digest.
	CreatedAt     time.Time // Set once at creation ("date added").
	UpdatedAt     time.Time // Bumped by every edit.
}
