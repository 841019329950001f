package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for the user domain. The email field always
// holds a normalized address because the only way to set one is through the
// Email value object.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user with a fresh id and both timestamps set to now.
// Ids are uuid v4; collisions are treated as impossible by construction.
func NewUser(email Email, name string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Email:     email.String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Key is the record identity used by the keyed store.
func (u User) Key() string { return u.ID }
