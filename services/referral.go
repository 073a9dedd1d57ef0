package services

import (
	"errors"
	"log"

	"coin-rewards-system/models"

	"gorm.io/gorm"
)

// ReferralService applies signup referral rewards and reports referrer
// stats. Referrer crediting is best-effort: a failure is logged and must
// never roll back the signup that triggered it.
type ReferralService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Settings *SettingsService
}

func NewReferralService(db *gorm.DB, ledger *LedgerService, settings *SettingsService) *ReferralService {
	return &ReferralService{DB: db, Ledger: ledger, Settings: settings}
}

// Referrer resolves a referral code to the referring user.
func (s *ReferralService) Referrer(code string) (*models.User, error) {
	var referrer models.User
	if err := s.DB.First(&referrer, "refer_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReferralCode
		}
		return nil, err
	}
	return &referrer, nil
}

// RewardReferrer credits the referrer for a completed signup. Callers ignore
// the returned error beyond logging; it exists for tests.
func (s *ReferralService) RewardReferrer(referrerID string) error {
	settings, err := s.Settings.Referral()
	if err != nil {
		return err
	}
	if settings.RewardForReferrer <= 0 {
		return nil
	}
	if err := s.Ledger.Credit(referrerID, settings.RewardType, settings.RewardForReferrer); err != nil {
		log.Printf("[REFERRAL] failed to credit referrer %s: %v", referrerID, err)
		return err
	}
	return nil
}

// NewUserReward returns the amount and type a referred signup starts with.
func (s *ReferralService) NewUserReward() (int64, models.RewardType, error) {
	settings, err := s.Settings.Referral()
	if err != nil {
		return 0, models.RewardTypeCoins, err
	}
	return settings.RewardForNewUser, settings.RewardType, nil
}

type ReferralStats struct {
	ReferCode         string            `json:"refer_code"`
	ReferralCount     int64             `json:"referral_count"`
	RewardPerReferral int64             `json:"reward_per_referral"`
	TotalEarnings     int64             `json:"total_earnings"`
	RewardType        models.RewardType `json:"reward_type"`
}

// Stats counts signups that used the user's code and projects earnings at
// the current configured rate.
func (s *ReferralService) Stats(user *models.User) (*ReferralStats, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("referred_by = ?", user.ReferCode).Count(&count).Error; err != nil {
		return nil, err
	}
	settings, err := s.Settings.Referral()
	if err != nil {
		return nil, err
	}
	return &ReferralStats{
		ReferCode:         user.ReferCode,
		ReferralCount:     count,
		RewardPerReferral: settings.RewardForReferrer,
		TotalEarnings:     count * settings.RewardForReferrer,
		RewardType:        settings.RewardType,
	}, nil
}
