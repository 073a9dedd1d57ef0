package models

import (
	"time"

	"gorm.io/gorm"
)

type AppDifficulty string

const (
	AppDifficultyEasiest AppDifficulty = "Easiest"
	AppDifficultyEasy    AppDifficulty = "Easy"
	AppDifficultyMedium  AppDifficulty = "Medium"
	AppDifficultyHard    AppDifficulty = "Hard"
)

func (d AppDifficulty) Valid() bool {
	switch d {
	case AppDifficultyEasiest, AppDifficultyEasy, AppDifficultyMedium, AppDifficultyHard:
		return true
	}
	return false
}

type AppStatus string

const (
	AppStatusActive   AppStatus = "Active"
	AppStatusInactive AppStatus = "Inactive"
)

// App is an installable app users earn RewardCoins for.
type App struct {
	ID             string        `gorm:"primaryKey;type:uuid;not null" json:"id"`
	AppName        string        `gorm:"not null" json:"app_name"`
	Slug           string        `gorm:"uniqueIndex;not null" json:"slug"`
	AppImage       string        `gorm:"type:text" json:"app_image"`
	AppDownloadURL string        `gorm:"type:text" json:"app_download_url"`
	RewardCoins    int64         `gorm:"not null;default:0" json:"reward_coins"`
	Difficulty     AppDifficulty `gorm:"not null;default:'Medium'" json:"difficulty"`
	Status         AppStatus     `gorm:"not null;default:'Active'" json:"status"`
	Description    string        `gorm:"type:text" json:"description"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "Pending"
	SubmissionStatusApproved SubmissionStatus = "Approved"
	SubmissionStatusRejected SubmissionStatus = "Rejected"
)

// AppInstallationSubmission is a Pending → {Approved, Rejected} state
// machine; terminal once transitioned. Approval credits the app's
// RewardCoins to the submitter.
type AppInstallationSubmission struct {
	ID            string           `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID        string           `gorm:"index;not null" json:"user_id"`
	AppID         string           `gorm:"index;not null" json:"app_id"`
	ScreenshotURL string           `gorm:"type:text;not null" json:"screenshot_url"`
	Status        SubmissionStatus `gorm:"not null;default:'Pending'" json:"status"`
	AdminNotes    *string          `json:"admin_notes,omitempty"`

	App *App `gorm:"foreignKey:AppID" json:"app,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AppInstallationSubmission) TableName() string { return "app_installation_submissions" }
