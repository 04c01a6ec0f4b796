package utils

import (
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	admin := Caller{ID: 1, Role: models.RoleAdmin}
	user := Caller{ID: 2, Role: models.RoleUser}
	own := uint(2)
	other := uint(3)

	assert.True(t, CanAccess(nil, admin))
	assert.False(t, CanAccess(&own, admin), "admin on a user-owned row")
	assert.False(t, CanAccess(nil, user), "user on a system row")
	assert.True(t, CanAccess(&own, user))
	assert.False(t, CanAccess(&other, user), "user on another user's row")
}

func TestOwnerOf(t *testing.T) {
	assert.Nil(t, OwnerOf(Caller{ID: 1, Role: models.RoleAdmin}))
	owner := OwnerOf(Caller{ID: 5, Role: models.RoleUser})
	if assert.NotNil(t, owner) {
		assert.Equal(t, uint(5), *owner)
	}
}

func TestRate(t *testing.T) {
	first := Rate(0, 5)
	assert.Equal(t, 2.5, first)
	assert.Equal(t, 3.3, Rate(first, 4))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(0, 0, 21)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPagination(2, 500, 0)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Zero(t, p.TotalPages)
}
