package models

import "time"

// DailyBonusClaim tracks one week of bonus claims per user. A weekday column
// flips false→true exactly once; the unique (user, week) index lets the claim
// gate upsert the row idempotently before the conditional flip.
type DailyBonusClaim struct {
	ID            string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID        string    `gorm:"uniqueIndex:idx_bonus_user_week;not null" json:"user_id"`
	WeekStartDate time.Time `gorm:"uniqueIndex:idx_bonus_user_week;not null" json:"week_start_date"`
	Monday        bool      `gorm:"not null;default:false" json:"monday"`
	Tuesday       bool      `gorm:"not null;default:false" json:"tuesday"`
	Wednesday     bool      `gorm:"not null;default:false" json:"wednesday"`
	Thursday      bool      `gorm:"not null;default:false" json:"thursday"`
	Friday        bool      `gorm:"not null;default:false" json:"friday"`
	Saturday      bool      `gorm:"not null;default:false" json:"saturday"`
	Sunday        bool      `gorm:"not null;default:false" json:"sunday"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DailyBonusClaim) TableName() string { return "daily_bonus_claims" }

// ClaimedOn reports whether the given weekday has been claimed this week.
func (c DailyBonusClaim) ClaimedOn(day string) bool {
	switch day {
	case "Monday":
		return c.Monday
	case "Tuesday":
		return c.Tuesday
	case "Wednesday":
		return c.Wednesday
	case "Thursday":
		return c.Thursday
	case "Friday":
		return c.Friday
	case "Saturday":
		return c.Saturday
	case "Sunday":
		return c.Sunday
	}
	return false
}

// ScratchCardClaim is one record per (user, weekday, week). The unique index
// is the second line of defense against duplicate inserts under retries.
type ScratchCardClaim struct {
	ID            string     `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID        string     `gorm:"uniqueIndex:idx_scratch_user_day_week;not null" json:"user_id"`
	Day           string     `gorm:"uniqueIndex:idx_scratch_user_day_week;not null" json:"day"`
	WeekStartDate time.Time  `gorm:"uniqueIndex:idx_scratch_user_day_week;not null" json:"week_start_date"`
	RewardAmount  int64      `gorm:"not null" json:"reward_amount"`
	RewardType    RewardType `gorm:"not null" json:"reward_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ScratchCardClaim) TableName() string { return "scratch_card_claims" }
