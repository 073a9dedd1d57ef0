package services

import (
	"testing"
	"time"

	"coin-rewards-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSpinService(t *testing.T, db *gorm.DB) *DailySpinService {
	t.Helper()
	return NewDailySpinService(db, NewClaimGate(db), NewSettingsService(db))
}

func TestSpinUseAccumulates(t *testing.T) {
	db := setupTestDB(t)
	svc := newSpinService(t, db)
	user := createTestUser(t, db, 0, 0)

	now := time.Now()
	state, err := svc.Use(user.ID, 3, now)
	require.NoError(t, err)
	require.EqualValues(t, 3, state.SpinsUsedToday)
	require.EqualValues(t, 7, state.SpinsRemaining)

	state, err = svc.Use(user.ID, 2, now)
	require.NoError(t, err)
	require.EqualValues(t, 5, state.SpinsUsedToday)
}

func TestSpinLimitEnforced(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.DailySpinSettings{
		ID:             models.SingletonID,
		DailySpinLimit: 4,
	}).Error)
	svc := newSpinService(t, db)
	user := createTestUser(t, db, 0, 0)

	now := time.Now()
	_, err := svc.Use(user.ID, 3, now)
	require.NoError(t, err)

	// 3 used + 2 requested would exceed the limit of 4.
	state, err := svc.Use(user.ID, 2, now)
	require.ErrorIs(t, err, ErrQuotaExceeded)
	require.EqualValues(t, 3, state.SpinsUsedToday)

	state, err = svc.Use(user.ID, 1, now)
	require.NoError(t, err)
	require.EqualValues(t, 4, state.SpinsUsedToday)
	require.EqualValues(t, 0, state.SpinsRemaining)
}

func TestSpinRejectsNonPositiveCount(t *testing.T) {
	db := setupTestDB(t)
	svc := newSpinService(t, db)
	user := createTestUser(t, db, 0, 0)

	_, err := svc.Use(user.ID, 0, time.Now())
	require.True(t, IsValidation(err))
	_, err = svc.Use(user.ID, -1, time.Now())
	require.True(t, IsValidation(err))
}

func TestSpinUsageReadOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newSpinService(t, db)
	user := createTestUser(t, db, 0, 0)

	now := time.Now()
	_, err := svc.Use(user.ID, 2, now)
	require.NoError(t, err)

	state, err := svc.Usage(user.ID, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, state.SpinsUsedToday)
	require.EqualValues(t, 10, state.DailyLimit)

	// Usage does not consume quota.
	state, err = svc.Usage(user.ID, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, state.SpinsUsedToday)
}
