package services

import (
	"testing"

	"coin-rewards-system/models"

	"github.com/stretchr/testify/require"
)

func TestSettingsLazyDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)

	captcha, err := svc.Captcha()
	require.NoError(t, err)
	require.EqualValues(t, 10, captcha.DailyCaptchaLimit)
	require.EqualValues(t, 1, captcha.RewardPerCaptcha)
	require.Equal(t, models.RewardTypeCoins, captcha.RewardType)

	conversion, err := svc.Conversion()
	require.NoError(t, err)
	require.EqualValues(t, 1, conversion.CoinsPerRupee)
	require.EqualValues(t, 100, conversion.MinimumCoinsToConvert)

	withdrawal, err := svc.Withdrawal()
	require.NoError(t, err)
	require.EqualValues(t, 100, withdrawal.MinimumWithdrawalAmount)

	spin, err := svc.DailySpin()
	require.NoError(t, err)
	require.EqualValues(t, 10, spin.DailySpinLimit)
}

func TestSettingsDefaultsAreDurable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)

	_, err := svc.Captcha()
	require.NoError(t, err)

	// The default row is materialized, not recomputed on every read.
	var count int64
	require.NoError(t, db.Model(&models.CaptchaSettings{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSettingsUpdateAndInvalidate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)

	updated, err := svc.UpdateCaptcha(5, 2, models.RewardTypeWallet)
	require.NoError(t, err)
	require.EqualValues(t, 5, updated.DailyCaptchaLimit)

	got, err := svc.Captcha()
	require.NoError(t, err)
	require.EqualValues(t, 5, got.DailyCaptchaLimit)
	require.EqualValues(t, 2, got.RewardPerCaptcha)
	require.Equal(t, models.RewardTypeWallet, got.RewardType)

	// A second service (another process) sees the update after invalidation.
	other := NewSettingsService(db)
	got, err = other.Captcha()
	require.NoError(t, err)
	require.EqualValues(t, 5, got.DailyCaptchaLimit)
}

func TestSettingsUpdateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)

	_, err := svc.UpdateCaptcha(-1, 1, models.RewardTypeCoins)
	require.True(t, IsValidation(err))

	_, err = svc.UpdateCaptcha(10, 1, "Gems")
	require.True(t, IsValidation(err))

	_, err = svc.UpdateConversion(0, 100)
	require.True(t, IsValidation(err))

	_, err = svc.UpdateConversion(1, 0)
	require.True(t, IsValidation(err))

	_, err = svc.UpdateWithdrawal(0)
	require.True(t, IsValidation(err))
}

func TestSettingsInvalidateRefreshesCache(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)

	_, err := svc.Withdrawal()
	require.NoError(t, err)

	// Simulate another instance editing the row directly.
	require.NoError(t, db.Model(&models.WithdrawalSettings{}).
		Where("id = ?", models.SingletonID).
		UpdateColumn("minimum_withdrawal_amount", 250).Error)

	cached, err := svc.Withdrawal()
	require.NoError(t, err)
	require.EqualValues(t, 100, cached.MinimumWithdrawalAmount)

	svc.Invalidate()
	fresh, err := svc.Withdrawal()
	require.NoError(t, err)
	require.EqualValues(t, 250, fresh.MinimumWithdrawalAmount)
}
