package memdb

import (
	"github.com/oksasatya/go-user-management/internal/domain/apperrors"
	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
)

const usersCollection = "users"

// UserRepository is the in-memory implementation of
// repository.UserRepository over one store collection.
type UserRepository struct {
	db *Store[entity.User]
}

func NewUserRepository(db *Store[entity.User]) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(id string) (*entity.User, error) {
	u, ok, err := r.db.GetByID(usersCollection, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// FindByEmail does a linear scan over the collection. There is no secondary
// index; fine at this scale.
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	users, err := r.db.GetAll(usersCollection)
	if err != nil {
		return nil, err
	}
	return matchEmail(users, email), nil
}

func (r *UserRepository) FindAll() ([]*entity.User, error) {
	users, err := r.db.GetAll(usersCollection)
	if err != nil {
		return nil, err
	}
	return asRefs(users), nil
}

func (r *UserRepository) Save(u *entity.User) (*entity.User, error) {
	if err := r.db.Put(usersCollection, *u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(id string, patch repository.UserPatch) (*entity.User, error) {
	updated, ok, err := r.db.Update(usersCollection, id, applyPatch(patch))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.UserNotFound(id)
	}
	return &updated, nil
}

func (r *UserRepository) Delete(id string) error {
	removed, err := r.db.Delete(usersCollection, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.UserNotFound(id)
	}
	return nil
}

// InTx binds a repository view to one store critical section and runs fn
// against it.
func (r *UserRepository) InTx(fn func(repository.UserRepository) error) error {
	return r.db.Atomic(func(tx *Tx[entity.User]) error {
		return fn(&txUserRepository{tx: tx})
	})
}

// txUserRepository serves repository calls inside an Atomic section.
type txUserRepository struct {
	tx *Tx[entity.User]
}

func (r *txUserRepository) FindByID(id string) (*entity.User, error) {
	u, ok := r.tx.GetByID(usersCollection, id)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *txUserRepository) FindByEmail(email string) (*entity.User, error) {
	return matchEmail(r.tx.GetAll(usersCollection), email), nil
}

func (r *txUserRepository) FindAll() ([]*entity.User, error) {
	return asRefs(r.tx.GetAll(usersCollection)), nil
}

func (r *txUserRepository) Save(u *entity.User) (*entity.User, error) {
	r.tx.Put(usersCollection, *u)
	return u, nil
}

func (r *txUserRepository) Update(id string, patch repository.UserPatch) (*entity.User, error) {
	updated, ok := r.tx.Update(usersCollection, id, applyPatch(patch))
	if !ok {
		return nil, apperrors.UserNotFound(id)
	}
	return &updated, nil
}

func (r *txUserRepository) Delete(id string) error {
	if !r.tx.Delete(usersCollection, id) {
		return apperrors.UserNotFound(id)
	}
	return nil
}

// InTx on a transactional view runs fn in the already-open section.
func (r *txUserRepository) InTx(fn func(repository.UserRepository) error) error {
	return fn(r)
}

func matchEmail(users []entity.User, email string) *entity.User {
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u
		}
	}
	return nil
}

func asRefs(users []entity.User) []*entity.User {
	out := make([]*entity.User, len(users))
	for i := range users {
		u := users[i]
		out[i] = &u
	}
	return out
}

func applyPatch(patch repository.UserPatch) func(entity.User) entity.User {
	return func(u entity.User) entity.User {
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if !patch.UpdatedAt.IsZero() {
			u.UpdatedAt = patch.UpdatedAt
		}
		return u
	}
}

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.UserRepository = (*txUserRepository)(nil)
)
