package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	email, err := NewEmail("Ann@Example.com")
	require.NoError(t, err)

	u := NewUser(email, "Ann")

	_, err = uuid.Parse(u.ID)
	assert.NoError(t, err, "id should be a uuid")
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, "Ann", u.Name)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
	assert.Equal(t, u.ID, u.Key())
}

func TestNewUser_FreshIDs(t *testing.T) {
	email, err := NewEmail("a@b.co")
	require.NoError(t, err)

	a := NewUser(email, "A")
	b := NewUser(email, "B")
	assert.NotEqual(t, a.ID, b.ID)
}
