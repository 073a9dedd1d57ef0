package services

import (
	"errors"
	"sync"

	"coin-rewards-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService is the configuration port every reward engine reads
// through. Each kind is a single row with a fixed primary key, lazily
// created with defaults on first read, cached in-process, and invalidated on
// admin writes (and periodically by the scheduler so multi-instance
// deployments converge).
type SettingsService struct {
	DB *gorm.DB

	mu         sync.RWMutex
	captcha    *models.CaptchaSettings
	dailyBonus *models.DailyBonusSettings
	scratch    *models.ScratchCardSettings
	spin       *models.DailySpinSettings
	referral   *models.ReferralSettings
	conversion *models.CoinConversionSettings
	withdrawal *models.WithdrawalSettings
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Invalidate drops every cached row; the next read reloads from storage.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captcha = nil
	s.dailyBonus = nil
	s.scratch = nil
	s.spin = nil
	s.referral = nil
	s.conversion = nil
	s.withdrawal = nil
}

// loadSingleton reads the settings row, inserting defaults if absent. The
// ON CONFLICT DO NOTHING insert makes concurrent first reads converge on one
// row instead of racing create-if-missing.
func loadSingleton[T any](db *gorm.DB, out *T) error {
	err := db.First(out, "id = ?", models.SingletonID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(out).Error; err != nil {
		return err
	}
	return db.First(out, "id = ?", models.SingletonID).Error
}

func (s *SettingsService) Captcha() (models.CaptchaSettings, error) {
	s.mu.RLock()
	if s.captcha != nil {
		defer s.mu.RUnlock()
		return *s.captcha, nil
	}
	s.mu.RUnlock()

	loaded := models.CaptchaSettings{
		ID:                models.SingletonID,
		DailyCaptchaLimit: 10,
		RewardPerCaptcha:  1,
		RewardType:        models.RewardTypeCoins,
	}
	if err := loadSingleton(s.DB, &loaded); err != nil {
		return models.CaptchaSettings{}, err
	}
	s.mu.Lock()
	s.captcha = &loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *SettingsService) UpdateCaptcha(limit, reward int64, rewardType models.RewardType) (models.CaptchaSettings, error) {
	if limit < 0 || reward < 0 {
		return models.CaptchaSettings{}, Validationf("limit and reward must be non-negative")
	}
	if !rewardType.Valid() {
		return models.CaptchaSettings{}, Validationf("reward type must be Coins or WalletBalance")
	}
	updated := models.CaptchaSettings{
		ID:                models.SingletonID,
		DailyCaptchaLimit: limit,
		RewardPerCaptcha:  reward,
		RewardType:        rewardType,
	}
	if err := s.saveSingleton(&updated); err != nil {
		return models.CaptchaSettings{}, err
	}
	s.mu.Lock()
	s.captcha = &updated
	s.mu.Unlock()
	return updated, nil
}

func (s *SettingsService) DailyBonus() (models.DailyBonusSettings, error) {
	s.mu.RLock()
	if s.dailyBonus != nil {
		defer s.mu.RUnlock()
		return *s.dailyBonus, nil
	}
	s.mu.RUnlock()

	loaded := models.DailyBonusSettings{
		ID:         models.SingletonID,
		RewardType: models.RewardTypeCoins,
	}
	if err := loadSingleton(s.DB, &loaded); err != nil {
		return models.DailyBonusSettings{}, err
	}
	s.mu.Lock()
	s.dailyBonus = &loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *SettingsService) UpdateDailyBonus(in models.DailyBonusSettings) (models.DailyBonusSettings, error) {
	for _, amount := range []int64{in.Monday, in.Tuesday, in.Wednesday, in.Thursday, in.Friday, in.Saturday, in.Sunday} {
		if amount < 0 {
			return models.DailyBonusSettings{}, Validationf("daily bonus amounts must be non-negative")
		}
	}
	if !in.RewardType.Valid() {
		return models.DailyBonusSettings{}, Validationf("reward type must be Coins or WalletBalance")
	}
	in.ID = models.SingletonID
	if err := s.saveSingleton(&in); err != nil {
		return models.DailyBonusSettings{}, err
	}
	s.mu.Lock()
	s.dailyBonus = &in
	s.mu.Unlock()
	return in, nil
}

func (s *SettingsService) ScratchCard() (models.ScratchCardSettings, error) {
	s.mu.RLock()
	if s.scratch != nil {
		defer s.mu.RUnlock()
		return *s.scratch, nil
	}
	s.mu.RUnlock()

	loaded := models.ScratchCardSettings{
		ID:         models.SingletonID,
		RewardType: models.RewardTypeCoins,
	}
	if err := loadSingleton(s.DB, &loaded); err != nil {
		return models.ScratchCardSettings{}, err
	}
	s.mu.Lock()
	s.scratch = &loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *SettingsService) UpdateScratchCard(in models.ScratchCardSettings) (models.ScratchCardSettings, error) {
	for _, amount := range []int64{in.Sunday, in.Monday, in.Tuesday, in.Wednesday, in.Thursday, in.Friday, in.Saturday} {
		if amount < 0 {
			return models.ScratchCardSettings{}, Validationf("scratch card amounts must be non-negative")
		}
	}
	if !in.RewardType.Valid() {
		return models.ScratchCardSettings{}, Validationf("reward type must be Coins or WalletBalance")
	}
	in.ID = models.SingletonID
	if err := s.saveSingleton(&in); err != nil {
		return models.ScratchCardSettings{}, err
	}
	s.mu.Lock()
	s.scratch = &in
	s.mu.Unlock()
	return in, nil
}

func (s *SettingsService) DailySpin() (models.DailySpinSettings, error) {
	s.mu.RLock()
	if s.spin != nil {
		defer s.mu.RUnlock()
		return *s.spin, nil
	}
	s.mu.RUnlock()

	loaded := models.DailySpinSettings{
		ID:             models.SingletonID,
		DailySpinLimit: 10,
	}
	if err := loadSingleton(s.DB, &loaded); err != nil {
		return models.DailySpinSettings{}, err
	}
	s.mu.Lock()
	s.spin = &loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *SettingsService) UpdateDailySpin(limit int64) (models.DailySpinSettings, error) {
	if limit < 0 {
		return models.DailySpinSettings{}, Validationf("daily spin limit must be non-negative")
	}
	updated := models.DailySpinSettings{ID: models.SingletonID, DailySpinLimit: limit}
	if err := s.saveSingleton(&updated); err != nil {
		return models.DailySpinSettings{}, err
	}
	s.mu.Lock()
	s.spin = &updated
	s.mu.Unlock()
	return updated, nil
}

func (s *SettingsService) Referral() (models.ReferralSettings, error) {
	s.mu.RLock()
	if s.referral != nil {
		defer s.mu.RUnlock()
		return *s.referral, nil
	}
	s.mu.RUnlock()

	loaded := models.ReferralSettings{
		ID:         models.SingletonID,
		RewardType: models.RewardTypeCoins,
	}
	if err := loadSingleton(s.DB, &loaded); err != nil {
		return models.ReferralSettings{}, err
	}
	s.mu.Lock()
	s.referral = &loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *SettingsService) UpdateReferral(newUser, referrer int64, rewardType models.RewardType) (models.ReferralSettings, error) {
	if newUser < 0 || referrer < 0 {
		return models.ReferralSettings{}, Validationf("referral rewards must be non-negative")
	}
	if !rewardType.Valid() {
		return models.ReferralSettings{}, Validationf("reward type must be Coins or WalletBalance")
	}
	updated := models.ReferralSettings{
		ID:                models.SingletonID,
		RewardForNewUser:  newUser,
		RewardForReferrer: referrer,
		RewardType:        rewardType,
	}
	if err := s.saveSingleton(&updated); err != nil {
		return models.ReferralSettings{}, err
	}
	s.mu.Lock()
	s.referral = &updated
	s.mu.Unlock()
	return updated, nil
}

func (s *SettingsService) Conversion() (models.CoinConversionSettings, error) {
	s.mu.RLock()
	if s.conversion != nil {
		defer s.mu.RUnlock()
		return *s.conversion, nil
	}
	s.mu.RUnlock()

	loaded := models.CoinConversionSettings{
		ID:                    models.SingletonID,
		CoinsPerRupee:         1,
		MinimumCoinsToConvert: 100,
	}
	if err := loadSingleton(s.DB, &loaded); err != nil {
		return models.CoinConversionSettings{}, err
	}
	s.mu.Lock()
	s.conversion = &loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *SettingsService) UpdateConversion(coinsPerRupee float64, minimumCoins int64) (models.CoinConversionSettings, error) {
	if coinsPerRupee <= 0 {
		return models.CoinConversionSettings{}, Validationf("coins per rupee must be greater than 0")
	}
	if minimumCoins < 1 {
		return models.CoinConversionSettings{}, Validationf("minimum coins to convert must be at least 1")
	}
	updated := models.CoinConversionSettings{
		ID:                    models.SingletonID,
		CoinsPerRupee:         coinsPerRupee,
		MinimumCoinsToConvert: minimumCoins,
	}
	if err := s.saveSingleton(&updated); err != nil {
		return models.CoinConversionSettings{}, err
	}
	s.mu.Lock()
	s.conversion = &updated
	s.mu.Unlock()
	return updated, nil
}

func (s *SettingsService) Withdrawal() (models.WithdrawalSettings, error) {
	s.mu.RLock()
	if s.withdrawal != nil {
		defer s.mu.RUnlock()
		return *s.withdrawal, nil
	}
	s.mu.RUnlock()

	loaded := models.WithdrawalSettings{
		ID:                      models.SingletonID,
		MinimumWithdrawalAmount: 100,
	}
	if err := loadSingleton(s.DB, &loaded); err != nil {
		return models.WithdrawalSettings{}, err
	}
	s.mu.Lock()
	s.withdrawal = &loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *SettingsService) UpdateWithdrawal(minimum float64) (models.WithdrawalSettings, error) {
	if minimum < 1 {
		return models.WithdrawalSettings{}, Validationf("minimum withdrawal amount must be at least 1")
	}
	updated := models.WithdrawalSettings{
		ID:                      models.SingletonID,
		MinimumWithdrawalAmount: minimum,
	}
	if err := s.saveSingleton(&updated); err != nil {
		return models.WithdrawalSettings{}, err
	}
	s.mu.Lock()
	s.withdrawal = &updated
	s.mu.Unlock()
	return updated, nil
}

func (s *SettingsService) saveSingleton(row any) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(row).Error
}
