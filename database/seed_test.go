package database

import (
	"testing"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestAutoMigrateCreatesTables(t *testing.T) {
	db := setupTestDB(t)
	for _, table := range []string{"users", "revoked_sessions", "menus", "vouchers", "orders", "order_items", "voucher_usage_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestSeedAdminOnlyOnce(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedAdmin(db, "admin", "rahasia"))
	require.NoError(t, SeedAdmin(db, "other", "lain"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("rahasia")))
}

func TestSeedAdminSkipsWithoutPassword(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedAdmin(db, "admin", ""))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Error(t, SeedAdmin(db, "", "rahasia"))
}

func TestSeedMenuFillsEmptyCatalogOnce(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedMenu(db))
	require.NoError(t, SeedMenu(db))

	var items []models.MenuItem
	require.NoError(t, db.Find(&items).Error)
	assert.Len(t, items, len(DefaultMenu))
	for _, it := range items {
		assert.True(t, it.IsActive, it.Name)
		assert.True(t, it.Category.Valid(), it.Name)
	}
	assert.False(t, DefaultMenu[0].IsActive, "DefaultMenu itself is not mutated")
}
