package services

import (
	"time"

	"coin-rewards-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailySpinService meters spin usage against the daily quota. It does not
// credit currency: spin outcomes and payout belong to an external process,
// this engine only guarantees the quota.
type DailySpinService struct {
	DB       *gorm.DB
	Gate     *ClaimGate
	Settings *SettingsService
}

func NewDailySpinService(db *gorm.DB, gate *ClaimGate, settings *SettingsService) *DailySpinService {
	return &DailySpinService{DB: db, Gate: gate, Settings: settings}
}

type SpinUsageState struct {
	SpinsUsedToday int64 `json:"spins_used_today"`
	DailyLimit     int64 `json:"daily_limit"`
	SpinsRemaining int64 `json:"spins_remaining"`
}

// Use consumes count spins (default 1) against today's quota.
func (s *DailySpinService) Use(userID string, count int64, now time.Time) (*SpinUsageState, error) {
	if count <= 0 {
		return nil, Validationf("spin count must be a positive integer, got %d", count)
	}

	settings, err := s.Settings.DailySpin()
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := DayWindow(now)
	usage := models.DailySpinUsage{
		ID:        uuid.NewString(),
		UserID:    userID,
		SpinDate:  now,
		SpinCount: count,
	}
	used, err := s.Gate.ReserveSpins(s.DB, &usage, dayStart, dayEnd, settings.DailySpinLimit)
	state := &SpinUsageState{
		SpinsUsedToday: used,
		DailyLimit:     settings.DailySpinLimit,
		SpinsRemaining: max(settings.DailySpinLimit-used, 0),
	}
	if err != nil {
		return state, err
	}
	return state, nil
}

// Usage reports today's spin consumption without reserving anything.
func (s *DailySpinService) Usage(userID string, now time.Time) (*SpinUsageState, error) {
	settings, err := s.Settings.DailySpin()
	if err != nil {
		return nil, err
	}
	dayStart, dayEnd := DayWindow(now)
	used, err := s.Gate.SpinsUsed(s.DB, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	return &SpinUsageState{
		SpinsUsedToday: used,
		DailyLimit:     settings.DailySpinLimit,
		SpinsRemaining: max(settings.DailySpinLimit-used, 0),
	}, nil
}
