package models

import "time"

// User is the single owner of reward currency. Coins and WalletBalance are
// mutated only through services.LedgerService; ReferredBy is write-once.
type User struct {
	ID            string  `gorm:"primaryKey;type:uuid;not null" json:"id"`
	MobileNumber  string  `gorm:"uniqueIndex;not null" json:"mobile_number"`
	Password      string  `gorm:"not null" json:"-"`
	DeviceID      *string `json:"device_id,omitempty"`
	ReferCode     string  `gorm:"uniqueIndex;not null" json:"refer_code"`
	ReferredBy    *string `gorm:"index" json:"referred_by,omitempty"`
	Coins         int64   `gorm:"not null;default:0" json:"coins"`
	WalletBalance float64 `gorm:"not null;default:0" json:"wallet_balance"`
	IsBlocked     bool    `gorm:"not null;default:false" json:"is_blocked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Admin is a separate principal space; admins hold no balances of their own.
type Admin struct {
	ID       string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
