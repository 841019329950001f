package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/domain/apperrors"
	"github.com/oksasatya/go-user-management/internal/domain/entity"
	repo "github.com/oksasatya/go-user-management/internal/domain/repository"
)

// Service orchestrates the user use cases. It owns no state: every method is
// a single synchronous transaction over the injected repository, and all
// invariant checks (email uniqueness, existence before mutate) happen here,
// never in the store.
type Service struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewService(r repo.UserRepository, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Logger: logger}
}

type CreateUserInput struct {
	Email string
	Name  string
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Email *string
	Name  *string
}

// CreateUser validates the email, enforces uniqueness and persists a fresh
// user. The lookup and the save run in one repository transaction so two
// concurrent creates with the same email cannot both pass the check.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	email, err := entity.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}

	var created *entity.User
	err = s.Repo.InTx(func(r repo.UserRepository) error {
		existing, err := r.FindByEmail(email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.EmailExists(email.String())
		}
		created, err = r.Save(entity.NewUser(email, in.Name))
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": created.ID, "email": created.Email}).Info("user created")
	}
	return created, nil
}

// GetUser returns the user or apperrors.ErrUserNotFound.
func (s *Service) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.UserNotFound(id)
	}
	return u, nil
}

// ListUsers returns every user; an empty slice is a valid result.
func (s *Service) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.FindAll()
}

// UpdateUser merges the supplied fields onto an existing user. A new email
// must not belong to a different user; keeping one's own email is not a
// conflict. The whole check-then-write runs in one repository transaction.
func (s *Service) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	patch := repo.UserPatch{Name: in.Name}

	if in.Email != nil {
		email, err := entity.NewEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		normalized := email.String()
		patch.Email = &normalized
	}

	var updated *entity.User
	err := s.Repo.InTx(func(r repo.UserRepository) error {
		existing, err := r.FindByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.UserNotFound(id)
		}
		if patch.Email != nil {
			owner, err := r.FindByEmail(*patch.Email)
			if err != nil {
				return err
			}
			if owner != nil && owner.ID != id {
				return apperrors.EmailInUse(*patch.Email)
			}
		}
		patch.UpdatedAt = time.Now().UTC()
		updated, err = r.Update(id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithField("user_id", updated.ID).Info("user updated")
	}
	return updated, nil
}

// DeleteUser removes the user or fails with apperrors.ErrUserNotFound, also
// when the id was already deleted.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	err := s.Repo.InTx(func(r repo.UserRepository) error {
		existing, err := r.FindByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.UserNotFound(id)
		}
		return r.Delete(id)
	})
	if err != nil {
		return err
	}

	if s.Logger != nil {
		s.Logger.WithField("user_id", id).Info("user deleted")
	}
	return nil
}
