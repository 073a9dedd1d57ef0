package services

import (
	"log"
	"regexp"
	"time"

	"coin-rewards-system/models"
	"coin-rewards-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answers are validated against the issued format only, not against a
// server-held challenge; the challenge string is never stored.
var captchaPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{2}$`)

type CaptchaService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Gate     *ClaimGate
	Settings *SettingsService
}

func NewCaptchaService(db *gorm.DB, ledger *LedgerService, gate *ClaimGate, settings *SettingsService) *CaptchaService {
	return &CaptchaService{DB: db, Ledger: ledger, Gate: gate, Settings: settings}
}

type CaptchaSolveResult struct {
	RewardAmount  int64             `json:"reward_amount"`
	RewardType    models.RewardType `json:"reward_type"`
	TodaySolves   int64             `json:"today_solves"`
	DailyLimit    int64             `json:"daily_limit"`
	Coins         int64             `json:"coins"`
	WalletBalance float64           `json:"wallet_balance"`
}

// Issue generates a fresh challenge string (3 letters + 2 digits).
func (s *CaptchaService) Issue() string {
	return utils.GenerateCaptcha()
}

// Solve validates the answer format, reserves a quota slot and credits the
// configured reward. The usage event is committed before the credit; a
// credit failure after the reservation is surfaced as an internal error so
// it gets reconciled rather than silently treated as success.
func (s *CaptchaService) Solve(userID, answer string, now time.Time) (*CaptchaSolveResult, error) {
	if answer == "" {
		return nil, Validationf("captcha answer is required")
	}
	if !captchaPattern.MatchString(answer) {
		return nil, Validationf("invalid captcha format, expected 3 letters followed by 2 digits (e.g. ABC12)")
	}

	settings, err := s.Settings.Captcha()
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := DayWindow(now)
	solve := models.CaptchaSolve{
		ID:           uuid.NewString(),
		UserID:       userID,
		SolveDate:    now,
		RewardAmount: settings.RewardPerCaptcha,
		RewardType:   settings.RewardType,
	}

	used, err := s.Gate.ReserveCaptchaSolve(s.DB, &solve, dayStart, dayEnd, settings.DailyCaptchaLimit)
	if err != nil {
		if err == ErrQuotaExceeded {
			return &CaptchaSolveResult{
				TodaySolves: used,
				DailyLimit:  settings.DailyCaptchaLimit,
			}, ErrQuotaExceeded
		}
		return nil, err
	}

	if settings.RewardPerCaptcha > 0 {
		if err := s.Ledger.Credit(userID, settings.RewardType, settings.RewardPerCaptcha); err != nil {
			log.Printf("[CAPTCHA] solve %s recorded but credit failed for user %s: %v", solve.ID, userID, err)
			return nil, err
		}
	}

	coins, wallet, err := s.Ledger.Balances(userID)
	if err != nil {
		return nil, err
	}
	return &CaptchaSolveResult{
		RewardAmount:  settings.RewardPerCaptcha,
		RewardType:    settings.RewardType,
		TodaySolves:   used,
		DailyLimit:    settings.DailyCaptchaLimit,
		Coins:         coins,
		WalletBalance: wallet,
	}, nil
}

// Usage returns the user's solve count and limit for the current day.
func (s *CaptchaService) Usage(userID string, now time.Time) (used, limit int64, err error) {
	settings, err := s.Settings.Captcha()
	if err != nil {
		return 0, 0, err
	}
	dayStart, dayEnd := DayWindow(now)
	used, err = s.Gate.CaptchaSolvesToday(s.DB, userID, dayStart, dayEnd)
	return used, settings.DailyCaptchaLimit, err
}
