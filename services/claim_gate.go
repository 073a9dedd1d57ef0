package services

import (
	"errors"
	"time"

	"coin-rewards-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClaimGate makes "has (user, kind, period) been claimed" check-and-set
// atomic. Marker rewards (daily bonus, scratch card) use a conditional
// column flip or a unique insert; quota rewards (captcha, spin) use a single
// guarded INSERT…SELECT so the count check and the event append cannot be
// split by a concurrent request.
type ClaimGate struct {
	DB *gorm.DB
}

func NewClaimGate(db *gorm.DB) *ClaimGate {
	return &ClaimGate{DB: db}
}

// weekday names are taken from time.Weekday.String(), never from callers, so
// interpolating the column name below is safe. Guard anyway.
var weekdayColumns = map[string]string{
	"Monday":    "monday",
	"Tuesday":   "tuesday",
	"Wednesday": "wednesday",
	"Thursday":  "thursday",
	"Friday":    "friday",
	"Saturday":  "saturday",
	"Sunday":    "sunday",
}

// ClaimDailyBonusDay flips the weekday column false→true for the user's
// week row. The row is upserted first with ON CONFLICT DO NOTHING (unique on
// user_id + week_start_date), then the flip only matches if the column is
// still false; zero rows affected means another request already claimed.
func (g *ClaimGate) ClaimDailyBonusDay(tx *gorm.DB, userID string, weekStart time.Time, weekday string) error {
	col, ok := weekdayColumns[weekday]
	if !ok {
		return Validationf("unknown weekday %q", weekday)
	}

	row := models.DailyBonusClaim{
		ID:            uuid.NewString(),
		UserID:        userID,
		WeekStartDate: weekStart,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return err
	}

	res := tx.Model(&models.DailyBonusClaim{}).
		Where("user_id = ? AND week_start_date = ? AND "+col+" = ?", userID, weekStart, false).
		UpdateColumn(col, true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyClaimed
	}
	return nil
}

// CreateScratchClaim inserts the per-(user, weekday, week) claim record. The
// unique index turns a racing duplicate into ErrAlreadyClaimed.
func (g *ClaimGate) CreateScratchClaim(tx *gorm.DB, claim *models.ScratchCardClaim) error {
	if err := tx.Create(claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyClaimed
		}
		return err
	}
	return nil
}

// ReserveCaptchaSolve appends a solve event only while the user's solve
// count inside [dayStart, dayEnd) is below the daily limit. Check and append
// are one statement, so concurrent solves cannot both slip under the limit.
// Returns the user's solve count for the day including this one.
func (g *ClaimGate) ReserveCaptchaSolve(tx *gorm.DB, solve *models.CaptchaSolve, dayStart, dayEnd time.Time, limit int64) (int64, error) {
	now := time.Now()
	res := tx.Exec(`
		INSERT INTO captcha_solves (id, user_id, solve_date, reward_amount, reward_type, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE (
			SELECT COUNT(*) FROM captcha_solves
			WHERE user_id = ? AND solve_date >= ? AND solve_date < ?
		) < ?`,
		solve.ID, solve.UserID, solve.SolveDate, solve.RewardAmount, solve.RewardType, now, now,
		solve.UserID, dayStart, dayEnd, limit,
	)
	if res.Error != nil {
		return 0, res.Error
	}

	var used int64
	if err := tx.Model(&models.CaptchaSolve{}).
		Where("user_id = ? AND solve_date >= ? AND solve_date < ?", solve.UserID, dayStart, dayEnd).
		Count(&used).Error; err != nil {
		return 0, err
	}
	if res.RowsAffected == 0 {
		return used, ErrQuotaExceeded
	}
	return used, nil
}

// ReserveSpins appends a spin usage event only while the spins already used
// today plus the requested count stay within the limit.
// Returns total spins used today including this reservation.
func (g *ClaimGate) ReserveSpins(tx *gorm.DB, usage *models.DailySpinUsage, dayStart, dayEnd time.Time, limit int64) (int64, error) {
	now := time.Now()
	res := tx.Exec(`
		INSERT INTO daily_spin_usages (id, user_id, spin_date, spin_count, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE (
			SELECT COALESCE(SUM(spin_count), 0) FROM daily_spin_usages
			WHERE user_id = ? AND spin_date >= ? AND spin_date < ?
		) + ? <= ?`,
		usage.ID, usage.UserID, usage.SpinDate, usage.SpinCount, now, now,
		usage.UserID, dayStart, dayEnd, usage.SpinCount, limit,
	)
	if res.Error != nil {
		return 0, res.Error
	}

	used, err := g.SpinsUsed(tx, usage.UserID, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}
	if res.RowsAffected == 0 {
		return used, ErrQuotaExceeded
	}
	return used, nil
}

// SpinsUsed sums the user's spin events inside the window.
func (g *ClaimGate) SpinsUsed(tx *gorm.DB, userID string, dayStart, dayEnd time.Time) (int64, error) {
	var used int64
	err := tx.Model(&models.DailySpinUsage{}).
		Where("user_id = ? AND spin_date >= ? AND spin_date < ?", userID, dayStart, dayEnd).
		Select("COALESCE(SUM(spin_count), 0)").
		Scan(&used).Error
	return used, err
}

// CaptchaSolvesToday counts the user's solve events inside the window.
func (g *ClaimGate) CaptchaSolvesToday(tx *gorm.DB, userID string, dayStart, dayEnd time.Time) (int64, error) {
	var used int64
	err := tx.Model(&models.CaptchaSolve{}).
		Where("user_id = ? AND solve_date >= ? AND solve_date < ?", userID, dayStart, dayEnd).
		Count(&used).Error
	return used, err
}
