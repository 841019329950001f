package repository

import (
	"time"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
)

// UserPatch is a partial update: nil fields are left untouched. UpdatedAt is
// applied when non-zero so callers control the mutation timestamp.
type UserPatch struct {
	Email     *string
	Name      *string
	UpdatedAt time.Time
}

// UserRepository is the domain-facing facade over user storage. Finders
// return (nil, nil) when no user matches; Update and Delete fail with
// apperrors.ErrUserNotFound for an absent id.
type UserRepository interface {
	FindByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	FindAll() ([]*entity.User, error)
	Save(u *entity.User) (*entity.User, error)
	Update(id string, patch UserPatch) (*entity.User, error)
	Delete(id string) error

	// InTx runs fn against a repository view bound to a single storage
	// critical section, so a lookup followed by a write cannot interleave
	// with concurrent callers.
	InTx(fn func(UserRepository) error) error
}
