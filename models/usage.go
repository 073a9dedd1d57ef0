package models

import "time"

// CaptchaSolve is an append-only usage event; the daily quota is derived by
// counting events in [day, day+1), never from a separate counter field.
type CaptchaSolve struct {
	ID           string     `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID       string     `gorm:"index:idx_captcha_user_date;not null" json:"user_id"`
	SolveDate    time.Time  `gorm:"index:idx_captcha_user_date;not null" json:"solve_date"`
	RewardAmount int64      `gorm:"not null;default:0" json:"reward_amount"`
	RewardType   RewardType `gorm:"not null;default:'Coins'" json:"reward_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CaptchaSolve) TableName() string { return "captcha_solves" }

// DailySpinUsage records spins consumed; SpinCount allows multi-unit use.
type DailySpinUsage struct {
	ID        string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID    string    `gorm:"index:idx_spin_user_date;not null" json:"user_id"`
	SpinDate  time.Time `gorm:"index:idx_spin_user_date;not null" json:"spin_date"`
	SpinCount int64     `gorm:"not null;default:1" json:"spin_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DailySpinUsage) TableName() string { return "daily_spin_usages" }
