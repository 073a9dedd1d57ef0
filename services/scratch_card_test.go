package services

import (
	"testing"
	"time"

	"coin-rewards-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScratchCardService(t *testing.T, db *gorm.DB) *ScratchCardService {
	t.Helper()
	return NewScratchCardService(db, NewLedgerService(db), NewClaimGate(db), NewSettingsService(db))
}

func seedScratchSettings(t *testing.T, db *gorm.DB, s models.ScratchCardSettings) {
	t.Helper()
	s.ID = models.SingletonID
	if s.RewardType == "" {
		s.RewardType = models.RewardTypeCoins
	}
	require.NoError(t, db.Create(&s).Error)
}

func TestScratchCardClaimOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	svc := newScratchCardService(t, db)
	seedScratchSettings(t, db, models.ScratchCardSettings{Wednesday: 15})
	user := createTestUser(t, db, 0, 0)

	wed := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)

	result, err := svc.Claim(user.ID, wed)
	require.NoError(t, err)
	require.EqualValues(t, 15, result.RewardAmount)
	require.EqualValues(t, 15, result.Coins)

	_, err = svc.Claim(user.ID, wed.Add(time.Hour))
	require.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestScratchCardPerWeekdayIsolation(t *testing.T) {
	db := setupTestDB(t)
	svc := newScratchCardService(t, db)
	seedScratchSettings(t, db, models.ScratchCardSettings{Monday: 5, Tuesday: 6})
	user := createTestUser(t, db, 0, 0)

	mon := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	tue := time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local)

	_, err := svc.Claim(user.ID, mon)
	require.NoError(t, err)

	// Monday's claim must not block Tuesday's card in the same week.
	result, err := svc.Claim(user.ID, tue)
	require.NoError(t, err)
	require.EqualValues(t, 11, result.Coins)
}

func TestScratchCardZeroAmountDay(t *testing.T) {
	db := setupTestDB(t)
	svc := newScratchCardService(t, db)
	seedScratchSettings(t, db, models.ScratchCardSettings{Monday: 5})
	user := createTestUser(t, db, 0, 0)

	fri := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	_, err := svc.Claim(user.ID, fri)
	require.ErrorIs(t, err, ErrNothingToClaim)
}

func TestScratchCardInfo(t *testing.T) {
	db := setupTestDB(t)
	svc := newScratchCardService(t, db)
	seedScratchSettings(t, db, models.ScratchCardSettings{Wednesday: 15})
	user := createTestUser(t, db, 0, 0)

	wed := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)

	info, err := svc.Info(user.ID, wed)
	require.NoError(t, err)
	require.Equal(t, "Wednesday", info.CurrentDay)
	require.EqualValues(t, 15, info.TodayAmount)
	require.False(t, info.IsClaimed)
	require.True(t, info.CanClaim)

	_, err = svc.Claim(user.ID, wed)
	require.NoError(t, err)

	info, err = svc.Info(user.ID, wed)
	require.NoError(t, err)
	require.True(t, info.IsClaimed)
	require.False(t, info.CanClaim)
}

func TestScratchCardHistoryTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := newScratchCardService(t, db)
	seedScratchSettings(t, db, models.ScratchCardSettings{Monday: 5, Tuesday: 6})
	user := createTestUser(t, db, 0, 0)

	_, err := svc.Claim(user.ID, time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	_, err = svc.Claim(user.ID, time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)

	history, err := svc.History(user.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, history.TotalClaims)
	require.Len(t, history.Claims, 2)
	require.EqualValues(t, 11, history.TotalCoinsEarned)
	require.EqualValues(t, 0, history.TotalWalletEarned)
}
