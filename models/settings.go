package models

import "time"

// RewardType selects which balance a reward credits.
type RewardType string

const (
	RewardTypeCoins  RewardType = "Coins"
	RewardTypeWallet RewardType = "WalletBalance"
)

func (t RewardType) Valid() bool {
	return t == RewardTypeCoins || t == RewardTypeWallet
}

// SingletonID is the fixed primary key shared by all settings rows; each
// settings table holds at most one row, lazily created with defaults.
const SingletonID uint = 1

type CaptchaSettings struct {
	ID                uint       `gorm:"primaryKey" json:"-"`
	DailyCaptchaLimit int64      `gorm:"not null;default:10" json:"daily_captcha_limit"`
	RewardPerCaptcha  int64      `gorm:"not null;default:1" json:"reward_per_captcha"`
	RewardType        RewardType `gorm:"not null;default:'Coins'" json:"reward_type"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// DailyBonusSettings holds one amount per weekday; zero means no bonus that day.
type DailyBonusSettings struct {
	ID         uint       `gorm:"primaryKey" json:"-"`
	Monday     int64      `gorm:"not null;default:0" json:"monday"`
	Tuesday    int64      `gorm:"not null;default:0" json:"tuesday"`
	Wednesday  int64      `gorm:"not null;default:0" json:"wednesday"`
	Thursday   int64      `gorm:"not null;default:0" json:"thursday"`
	Friday     int64      `gorm:"not null;default:0" json:"friday"`
	Saturday   int64      `gorm:"not null;default:0" json:"saturday"`
	Sunday     int64      `gorm:"not null;default:0" json:"sunday"`
	RewardType RewardType `gorm:"not null;default:'Coins'" json:"reward_type"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// AmountFor returns the configured amount for a weekday name ("Monday"...).
func (s DailyBonusSettings) AmountFor(day string) int64 {
	switch day {
	case "Monday":
		return s.Monday
	case "Tuesday":
		return s.Tuesday
	case "Wednesday":
		return s.Wednesday
	case "Thursday":
		return s.Thursday
	case "Friday":
		return s.Friday
	case "Saturday":
		return s.Saturday
	case "Sunday":
		return s.Sunday
	}
	return 0
}

type ScratchCardSettings struct {
	ID         uint       `gorm:"primaryKey" json:"-"`
	Sunday     int64      `gorm:"not null;default:0" json:"sunday"`
	Monday     int64      `gorm:"not null;default:0" json:"monday"`
	Tuesday    int64      `gorm:"not null;default:0" json:"tuesday"`
	Wednesday  int64      `gorm:"not null;default:0" json:"wednesday"`
	Thursday   int64      `gorm:"not null;default:0" json:"thursday"`
	Friday     int64      `gorm:"not null;default:0" json:"friday"`
	Saturday   int64      `gorm:"not null;default:0" json:"saturday"`
	RewardType RewardType `gorm:"not null;default:'Coins'" json:"reward_type"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (s ScratchCardSettings) AmountFor(day string) int64 {
	switch day {
	case "Sunday":
		return s.Sunday
	case "Monday":
		return s.Monday
	case "Tuesday":
		return s.Tuesday
	case "Wednesday":
		return s.Wednesday
	case "Thursday":
		return s.Thursday
	case "Friday":
		return s.Friday
	case "Saturday":
		return s.Saturday
	}
	return 0
}

type DailySpinSettings struct {
	ID             uint  `gorm:"primaryKey" json:"-"`
	DailySpinLimit int64 `gorm:"not null;default:10" json:"daily_spin_limit"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type ReferralSettings struct {
	ID                uint       `gorm:"primaryKey" json:"-"`
	RewardForNewUser  int64      `gorm:"not null;default:0" json:"reward_for_new_user"`
	RewardForReferrer int64      `gorm:"not null;default:0" json:"reward_for_referrer"`
	RewardType        RewardType `gorm:"not null;default:'Coins'" json:"reward_type"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type CoinConversionSettings struct {
	ID                    uint    `gorm:"primaryKey" json:"-"`
	CoinsPerRupee         float64 `gorm:"not null;default:1" json:"coins_per_rupee"`
	MinimumCoinsToConvert int64   `gorm:"not null;default:100" json:"minimum_coins_to_convert"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type WithdrawalSettings struct {
	ID                      uint    `gorm:"primaryKey" json:"-"`
	MinimumWithdrawalAmount float64 `gorm:"not null;default:100" json:"minimum_withdrawal_amount"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
