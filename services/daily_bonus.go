package services

import (
	"log"
	"time"

	"coin-rewards-system/models"

	"gorm.io/gorm"
)

type DailyBonusService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Gate     *ClaimGate
	Settings *SettingsService
}

func NewDailyBonusService(db *gorm.DB, ledger *LedgerService, gate *ClaimGate, settings *SettingsService) *DailyBonusService {
	return &DailyBonusService{DB: db, Ledger: ledger, Gate: gate, Settings: settings}
}

type DailyBonusClaimResult struct {
	Day           string            `json:"day"`
	Amount        int64             `json:"amount"`
	RewardType    models.RewardType `json:"reward_type"`
	Coins         int64             `json:"coins"`
	WalletBalance float64           `json:"wallet_balance"`
}

type DayBonusStatus struct {
	Day     string `json:"day"`
	Amount  int64  `json:"amount"`
	Claimed bool   `json:"claimed"`
	IsToday bool   `json:"is_today"`
}

type DailyBonusWeek struct {
	Bonuses       []DayBonusStatus  `json:"bonuses"`
	RewardType    models.RewardType `json:"reward_type"`
	WeekStartDate time.Time         `json:"week_start_date"`
	CurrentDay    string            `json:"current_day"`
}

// Claim awards today's bonus at most once per (user, day). The claim gate
// commits the marker first; only then is the ledger credited, so a crash
// between the two shows up as a claimed-but-uncredited marker to reconcile,
// never as a double credit.
func (s *DailyBonusService) Claim(userID string, now time.Time) (*DailyBonusClaimResult, error) {
	settings, err := s.Settings.DailyBonus()
	if err != nil {
		return nil, err
	}

	day := WeekdayName(now)
	amount := settings.AmountFor(day)
	if amount <= 0 {
		return nil, ErrNothingToClaim
	}

	weekStart := StartOfWeek(now)
	if err := s.Gate.ClaimDailyBonusDay(s.DB, userID, weekStart, day); err != nil {
		return nil, err
	}

	if err := s.Ledger.Credit(userID, settings.RewardType, amount); err != nil {
		log.Printf("[DAILY_BONUS] marker committed but credit failed for user %s (%s, week %s): %v",
			userID, day, weekStart.Format("2006-01-02"), err)
		return nil, err
	}

	coins, wallet, err := s.Ledger.Balances(userID)
	if err != nil {
		return nil, err
	}
	return &DailyBonusClaimResult{
		Day:           day,
		Amount:        amount,
		RewardType:    settings.RewardType,
		Coins:         coins,
		WalletBalance: wallet,
	}, nil
}

// Week returns the current week's bonus schedule with per-day claim state.
func (s *DailyBonusService) Week(userID string, now time.Time) (*DailyBonusWeek, error) {
	settings, err := s.Settings.DailyBonus()
	if err != nil {
		return nil, err
	}

	weekStart := StartOfWeek(now)
	var claim models.DailyBonusClaim
	err = s.DB.Where("user_id = ? AND week_start_date = ?", userID, weekStart).First(&claim).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	// Absent row means nothing claimed yet; the zero value already says so.

	currentDay := WeekdayName(now)
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	bonuses := make([]DayBonusStatus, 0, len(days))
	for _, d := range days {
		bonuses = append(bonuses, DayBonusStatus{
			Day:     d,
			Amount:  settings.AmountFor(d),
			Claimed: claim.ClaimedOn(d),
			IsToday: d == currentDay,
		})
	}
	return &DailyBonusWeek{
		Bonuses:       bonuses,
		RewardType:    settings.RewardType,
		WeekStartDate: weekStart,
		CurrentDay:    currentDay,
	}, nil
}
