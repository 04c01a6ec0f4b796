// Package testutil provides an in-memory store for service and route tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/config"
	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated sqlite database that lives for the duration of t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

var seq atomic.Int64

// NewUser inserts a verified user with the given role and returns it.
func NewUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()
	n := seq.Add(1)
	u := &models.User{
		FullName:       fmt.Sprintf("User %d", n),
		Email:          fmt.Sprintf("user%d@example.com", n),
		Username:       fmt.Sprintf("user%d", n),
		Password:       "x",
		Role:           role,
		Verify:         models.Verified,
		Status:         models.UserStatusNormal,
		NotifySettings: models.DefaultNotifySettings(),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CallerOf is the token identity of u.
func CallerOf(u *models.User) utils.Caller {
	return utils.Caller{ID: u.ID, Role: u.Role, Verify: u.Verify}
}

// Admin inserts an admin and returns its caller.
func Admin(t *testing.T, db *gorm.DB) utils.Caller {
	return CallerOf(NewUser(t, db, models.RoleAdmin))
}

// Member inserts a verified user and returns its caller.
func Member(t *testing.T, db *gorm.DB) utils.Caller {
	return CallerOf(NewUser(t, db, models.RoleUser))
}

