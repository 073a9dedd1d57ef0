package services

import (
	"testing"

	"coin-rewards-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newConversionService(t *testing.T, db *gorm.DB) *ConversionService {
	t.Helper()
	return NewConversionService(db, NewLedgerService(db), NewSettingsService(db))
}

func seedConversionSettings(t *testing.T, db *gorm.DB, rate float64, minimum int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.CoinConversionSettings{
		ID:                    models.SingletonID,
		CoinsPerRupee:         rate,
		MinimumCoinsToConvert: minimum,
	}).Error)
}

func TestConvertRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedConversionSettings(t, db, 2, 100)
	svc := newConversionService(t, db)
	user := createTestUser(t, db, 250, 0)

	result, err := svc.Convert(user.ID, 100)
	require.NoError(t, err)
	require.EqualValues(t, 100, result.CoinsConverted)
	require.EqualValues(t, 50, result.RupeesAdded)
	require.EqualValues(t, 150, result.RemainingCoins)
	require.EqualValues(t, 50, result.WalletBalance)
}

func TestConvertBelowMinimum(t *testing.T) {
	db := setupTestDB(t)
	seedConversionSettings(t, db, 1, 100)
	svc := newConversionService(t, db)
	user := createTestUser(t, db, 500, 0)

	_, err := svc.Convert(user.ID, 99)
	require.True(t, IsValidation(err))
}

func TestConvertInsufficientCoins(t *testing.T) {
	db := setupTestDB(t)
	seedConversionSettings(t, db, 1, 100)
	svc := newConversionService(t, db)
	user := createTestUser(t, db, 50, 0)

	_, err := svc.Convert(user.ID, 100)
	require.ErrorIs(t, err, ErrInsufficientCoins)

	// Failed conversion must not touch either balance.
	coins, wallet, err := NewLedgerService(db).Balances(user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 50, coins)
	require.EqualValues(t, 0, wallet)
}

func TestConvertRejectsNonPositive(t *testing.T) {
	db := setupTestDB(t)
	svc := newConversionService(t, db)
	user := createTestUser(t, db, 500, 0)

	_, err := svc.Convert(user.ID, 0)
	require.True(t, IsValidation(err))
	_, err = svc.Convert(user.ID, -10)
	require.True(t, IsValidation(err))
}

func TestConversionRateInfo(t *testing.T) {
	db := setupTestDB(t)
	seedConversionSettings(t, db, 2, 100)
	svc := newConversionService(t, db)
	user := createTestUser(t, db, 300, 0)

	info, err := svc.Rate(user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, info.CoinsPerRupee)
	require.EqualValues(t, 300, info.UserCoins)
	require.EqualValues(t, 150, info.RupeesValue)
	require.True(t, info.CanConvert)

	poor := createTestUser(t, db, 10, 0)
	info, err = svc.Rate(poor.ID)
	require.NoError(t, err)
	require.False(t, info.CanConvert)
}
