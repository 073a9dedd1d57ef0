package services

import (
	"log"
	"time"

	"coin-rewards-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScratchCardService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Gate     *ClaimGate
	Settings *SettingsService
}

func NewScratchCardService(db *gorm.DB, ledger *LedgerService, gate *ClaimGate, settings *SettingsService) *ScratchCardService {
	return &ScratchCardService{DB: db, Ledger: ledger, Gate: gate, Settings: settings}
}

type ScratchCardClaimResult struct {
	Day           string            `json:"day"`
	RewardAmount  int64             `json:"reward_amount"`
	RewardType    models.RewardType `json:"reward_type"`
	Coins         int64             `json:"coins"`
	WalletBalance float64           `json:"wallet_balance"`
	ClaimedAt     time.Time         `json:"claimed_at"`
}

type ScratchCardInfo struct {
	CurrentDay    string            `json:"current_day"`
	TodayAmount   int64             `json:"today_amount"`
	RewardType    models.RewardType `json:"reward_type"`
	IsClaimed     bool              `json:"is_claimed"`
	CanClaim      bool              `json:"can_claim"`
	WeekStartDate time.Time         `json:"week_start_date"`
	AllDays       map[string]int64  `json:"all_days"`
}

// Claim creates today's scratch card claim record; the unique
// (user, day, week) index rejects a racing duplicate.
func (s *ScratchCardService) Claim(userID string, now time.Time) (*ScratchCardClaimResult, error) {
	settings, err := s.Settings.ScratchCard()
	if err != nil {
		return nil, err
	}

	day := WeekdayName(now)
	amount := settings.AmountFor(day)
	if amount <= 0 {
		return nil, ErrNothingToClaim
	}

	claim := models.ScratchCardClaim{
		ID:            uuid.NewString(),
		UserID:        userID,
		Day:           day,
		WeekStartDate: StartOfWeek(now),
		RewardAmount:  amount,
		RewardType:    settings.RewardType,
	}
	if err := s.Gate.CreateScratchClaim(s.DB, &claim); err != nil {
		return nil, err
	}

	if err := s.Ledger.Credit(userID, settings.RewardType, amount); err != nil {
		log.Printf("[SCRATCH_CARD] claim %s committed but credit failed for user %s: %v", claim.ID, userID, err)
		return nil, err
	}

	coins, wallet, err := s.Ledger.Balances(userID)
	if err != nil {
		return nil, err
	}
	return &ScratchCardClaimResult{
		Day:           day,
		RewardAmount:  amount,
		RewardType:    settings.RewardType,
		Coins:         coins,
		WalletBalance: wallet,
		ClaimedAt:     claim.CreatedAt,
	}, nil
}

// Info reports today's card state: amount, whether it was claimed, and the
// full weekly schedule.
func (s *ScratchCardService) Info(userID string, now time.Time) (*ScratchCardInfo, error) {
	settings, err := s.Settings.ScratchCard()
	if err != nil {
		return nil, err
	}

	day := WeekdayName(now)
	weekStart := StartOfWeek(now)

	var count int64
	if err := s.DB.Model(&models.ScratchCardClaim{}).
		Where("user_id = ? AND day = ? AND week_start_date = ?", userID, day, weekStart).
		Count(&count).Error; err != nil {
		return nil, err
	}

	amount := settings.AmountFor(day)
	claimed := count > 0
	return &ScratchCardInfo{
		CurrentDay:    day,
		TodayAmount:   amount,
		RewardType:    settings.RewardType,
		IsClaimed:     claimed,
		CanClaim:      !claimed && amount > 0,
		WeekStartDate: weekStart,
		AllDays: map[string]int64{
			"Sunday":    settings.Sunday,
			"Monday":    settings.Monday,
			"Tuesday":   settings.Tuesday,
			"Wednesday": settings.Wednesday,
			"Thursday":  settings.Thursday,
			"Friday":    settings.Friday,
			"Saturday":  settings.Saturday,
		},
	}, nil
}

type ScratchCardHistory struct {
	Claims            []models.ScratchCardClaim `json:"claims"`
	TotalClaims       int64                     `json:"total_claims"`
	TotalCoinsEarned  int64                     `json:"total_coins_earned"`
	TotalWalletEarned int64                     `json:"total_wallet_earned"`
}

// History returns a page of the user's claims plus lifetime earned totals.
func (s *ScratchCardService) History(userID string, page, limit int) (*ScratchCardHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var total int64
	if err := s.DB.Model(&models.ScratchCardClaim{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var claims []models.ScratchCardClaim
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&claims).Error; err != nil {
		return nil, err
	}

	var coinsEarned, walletEarned int64
	if err := s.DB.Model(&models.ScratchCardClaim{}).
		Where("user_id = ? AND reward_type = ?", userID, models.RewardTypeCoins).
		Select("COALESCE(SUM(reward_amount), 0)").Scan(&coinsEarned).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.ScratchCardClaim{}).
		Where("user_id = ? AND reward_type = ?", userID, models.RewardTypeWallet).
		Select("COALESCE(SUM(reward_amount), 0)").Scan(&walletEarned).Error; err != nil {
		return nil, err
	}

	return &ScratchCardHistory{
		Claims:            claims,
		TotalClaims:       total,
		TotalCoinsEarned:  coinsEarned,
		TotalWalletEarned: walletEarned,
	}, nil
}
