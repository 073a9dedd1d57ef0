package services

import (
	"fmt"
	"testing"

	"coin-rewards-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB gives each test its own in-memory database with the full
// schema, using the same TranslateError config as production so unique
// violations surface as gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, coins int64, wallet float64) *models.User {
	t.Helper()
	user := &models.User{
		ID:            uuid.NewString(),
		MobileNumber:  "9" + uuid.NewString()[:9],
		Password:      "not-a-real-hash",
		ReferCode:     uuid.NewString()[:6],
		Coins:         coins,
		WalletBalance: wallet,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
