package memdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-management/internal/domain/apperrors"
	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
)

func newTestRepo(t *testing.T) *UserRepository {
	t.Helper()
	db := NewStore[entity.User](nil)
	require.NoError(t, db.Connect())
	return NewUserRepository(db)
}

func mustUser(t *testing.T, email, name string) *entity.User {
	t.Helper()
	vo, err := entity.NewEmail(email)
	require.NoError(t, err)
	return entity.NewUser(vo, name)
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	r := newTestRepo(t)
	u := mustUser(t, "ann@example.com", "Ann")

	saved, err := r.Save(u)
	require.NoError(t, err)
	assert.Equal(t, u.ID, saved.ID)

	byID, err := r.FindByID(u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ann@example.com", byID.Email)

	byEmail, err := r.FindByEmail("ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestUserRepository_FindersReturnNilOnMiss(t *testing.T) {
	r := newTestRepo(t)

	byID, err := r.FindByID("nope")
	require.NoError(t, err)
	assert.Nil(t, byID)

	byEmail, err := r.FindByEmail("nope@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)

	all, err := r.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserRepository_FindReturnsCopies(t *testing.T) {
	r := newTestRepo(t)
	u := mustUser(t, "ann@example.com", "Ann")
	_, err := r.Save(u)
	require.NoError(t, err)

	got, err := r.FindByID(u.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := r.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.Name)
}

func TestUserRepository_Update(t *testing.T) {
	r := newTestRepo(t)
	u := mustUser(t, "ann@example.com", "Ann")
	_, err := r.Save(u)
	require.NoError(t, err)

	name := "Annie"
	now := time.Now().UTC()
	updated, err := r.Update(u.ID, repository.UserPatch{Name: &name, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.Equal(t, "ann@example.com", updated.Email, "unset fields stay")
	assert.Equal(t, now, updated.UpdatedAt)
	assert.Equal(t, u.CreatedAt, updated.CreatedAt)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	r := newTestRepo(t)

	name := "Annie"
	_, err := r.Update("nope", repository.UserPatch{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	r := newTestRepo(t)
	u := mustUser(t, "ann@example.com", "Ann")
	_, err := r.Save(u)
	require.NoError(t, err)

	require.NoError(t, r.Delete(u.ID))
	assert.ErrorIs(t, r.Delete(u.ID), apperrors.ErrUserNotFound)
}

func TestUserRepository_InTx(t *testing.T) {
	r := newTestRepo(t)
	u := mustUser(t, "ann@example.com", "Ann")

	err := r.InTx(func(view repository.UserRepository) error {
		existing, err := view.FindByEmail(u.Email)
		require.NoError(t, err)
		require.Nil(t, existing)
		_, err = view.Save(u)
		return err
	})
	require.NoError(t, err)

	got, err := r.FindByID(u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestUserRepository_InTxPropagatesError(t *testing.T) {
	r := newTestRepo(t)

	err := r.InTx(func(view repository.UserRepository) error {
		return apperrors.EmailExists("ann@example.com")
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
}
