package services

import (
	"errors"
	"fmt"
	"log"

	"coin-rewards-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// AppService manages the installable-app catalog and the submission flow
// that pays out RewardCoins when an admin approves a screenshot.
type AppService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewAppService(db *gorm.DB, ledger *LedgerService) *AppService {
	return &AppService{DB: db, Ledger: ledger}
}

type AppInput struct {
	AppName        string               `json:"app_name"`
	AppImage       string               `json:"app_image"`
	AppDownloadURL string               `json:"app_download_url"`
	RewardCoins    int64                `json:"reward_coins"`
	Difficulty     models.AppDifficulty `json:"difficulty"`
	Status         models.AppStatus     `json:"status"`
	Description    string               `json:"description"`
}

func (s *AppService) Create(input AppInput) (*models.App, error) {
	if input.AppName == "" {
		return nil, Validationf("app name is required")
	}
	if input.RewardCoins < 0 {
		return nil, Validationf("reward coins cannot be negative")
	}
	if input.Difficulty == "" {
		input.Difficulty = models.AppDifficultyMedium
	}
	if !input.Difficulty.Valid() {
		return nil, Validationf("difficulty must be one of Easiest, Easy, Medium, Hard")
	}
	if input.Status == "" {
		input.Status = models.AppStatusActive
	}

	app := models.App{
		ID:             uuid.NewString(),
		AppName:        input.AppName,
		Slug:           s.uniqueSlug(input.AppName),
		AppImage:       input.AppImage,
		AppDownloadURL: input.AppDownloadURL,
		RewardCoins:    input.RewardCoins,
		Difficulty:     input.Difficulty,
		Status:         input.Status,
		Description:    input.Description,
	}
	if err := s.DB.Create(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *AppService) Update(id string, input AppInput) (*models.App, error) {
	var app models.App
	if err := s.DB.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	if input.AppName != "" && input.AppName != app.AppName {
		app.AppName = input.AppName
		app.Slug = s.uniqueSlug(input.AppName)
	}
	if input.AppImage != "" {
		app.AppImage = input.AppImage
	}
	if input.AppDownloadURL != "" {
		app.AppDownloadURL = input.AppDownloadURL
	}
	if input.RewardCoins > 0 {
		app.RewardCoins = input.RewardCoins
	}
	if input.Difficulty != "" {
		if !input.Difficulty.Valid() {
			return nil, Validationf("difficulty must be one of Easiest, Easy, Medium, Hard")
		}
		app.Difficulty = input.Difficulty
	}
	if input.Status != "" {
		if input.Status != models.AppStatusActive && input.Status != models.AppStatusInactive {
			return nil, Validationf("status must be either 'Active' or 'Inactive'")
		}
		app.Status = input.Status
	}
	if input.Description != "" {
		app.Description = input.Description
	}

	if err := s.DB.Save(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Delete soft-deletes the app; past submissions keep their references.
func (s *AppService) Delete(id string) error {
	res := s.DB.Delete(&models.App{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAppNotFound
	}
	return nil
}

func (s *AppService) ByID(id string) (*models.App, error) {
	var app models.App
	if err := s.DB.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}
	return &app, nil
}

// AppListing is an app plus the requesting user's submission state for it.
type AppListing struct {
	models.App
	SubmissionStatus *models.SubmissionStatus `json:"submission_status,omitempty"`
}

// ListForUser returns active apps with the caller's latest submission status
// attached. filter accepts a difficulty name, "highest" (reward desc) or
// "easiest" (Easiest difficulty first).
func (s *AppService) ListForUser(userID, filter string) ([]AppListing, error) {
	q := s.DB.Where("status = ?", models.AppStatusActive)
	switch filter {
	case "", "all":
		q = q.Order("created_at DESC")
	case "highest":
		q = q.Order("reward_coins DESC")
	case "easiest":
		q = q.Where("difficulty = ?", models.AppDifficultyEasiest).Order("created_at DESC")
	default:
		d := models.AppDifficulty(filter)
		if !d.Valid() {
			return nil, Validationf("filter must be one of all, highest, easiest, Easiest, Easy, Medium, Hard")
		}
		q = q.Where("difficulty = ?", d).Order("created_at DESC")
	}

	var apps []models.App
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}

	var submissions []models.AppInstallationSubmission
	if err := s.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	latest := make(map[string]models.SubmissionStatus, len(submissions))
	for _, sub := range submissions {
		latest[sub.AppID] = sub.Status
	}

	listings := make([]AppListing, 0, len(apps))
	for _, app := range apps {
		l := AppListing{App: app}
		if status, ok := latest[app.ID]; ok {
			st := status
			l.SubmissionStatus = &st
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// ListAll returns the full catalog for admins, soft-deleted rows excluded.
func (s *AppService) ListAll() ([]models.App, error) {
	var apps []models.App
	if err := s.DB.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Submit records an installation claim for review. A user gets one approved
// submission per app ever, and one pending submission per app at a time.
func (s *AppService) Submit(userID, appID, screenshotURL string) (*models.AppInstallationSubmission, error) {
	if screenshotURL == "" {
		return nil, Validationf("screenshot is required")
	}

	var app models.App
	if err := s.DB.First(&app, "id = ?", appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}
	if app.Status != models.AppStatusActive {
		return nil, ErrAppInactive
	}

	var approved int64
	if err := s.DB.Model(&models.AppInstallationSubmission{}).
		Where("user_id = ? AND app_id = ? AND status = ?", userID, appID, models.SubmissionStatusApproved).
		Count(&approved).Error; err != nil {
		return nil, err
	}
	if approved > 0 {
		return nil, ErrAlreadyApproved
	}

	var pending int64
	if err := s.DB.Model(&models.AppInstallationSubmission{}).
		Where("user_id = ? AND app_id = ? AND status = ?", userID, appID, models.SubmissionStatusPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrPendingSubmissionExists
	}

	sub := models.AppInstallationSubmission{
		ID:            uuid.NewString(),
		UserID:        userID,
		AppID:         appID,
		ScreenshotURL: screenshotURL,
		Status:        models.SubmissionStatusPending,
	}
	if err := s.DB.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

type SubmissionResolution struct {
	SubmissionID string                  `json:"submission_id"`
	AppID        string                  `json:"app_id"`
	UserID       string                  `json:"user_id"`
	Status       models.SubmissionStatus `json:"status"`
	CoinsAwarded int64                   `json:"coins_awarded"`
	AdminNotes   *string                 `json:"admin_notes,omitempty"`
}

// ResolveSubmission flips a Pending submission to Approved or Rejected.
// The flip is conditional on the current status so concurrent admins cannot
// double-award; the reward credit runs in the same transaction as the flip.
func (s *AppService) ResolveSubmission(submissionID string, decision models.SubmissionStatus, notes string) (*SubmissionResolution, error) {
	if decision != models.SubmissionStatusApproved && decision != models.SubmissionStatusRejected {
		return nil, Validationf("status must be either 'Approved' or 'Rejected'")
	}

	var sub models.AppInstallationSubmission
	var awarded int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, "id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}

		updates := map[string]any{"status": decision}
		if notes != "" {
			updates["admin_notes"] = notes
		}
		res := tx.Model(&models.AppInstallationSubmission{}).
			Where("id = ? AND status = ?", submissionID, models.SubmissionStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		if decision == models.SubmissionStatusApproved {
			var app models.App
			if err := tx.Unscoped().First(&app, "id = ?", sub.AppID).Error; err != nil {
				return err
			}
			if app.RewardCoins > 0 {
				if err := s.Ledger.CreditCoinsTx(tx, sub.UserID, app.RewardCoins); err != nil {
					return err
				}
				awarded = app.RewardCoins
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if decision == models.SubmissionStatusApproved {
		log.Printf("[APPS] submission %s approved, %d coins awarded to user %s", sub.ID, awarded, sub.UserID)
	}

	resolution := &SubmissionResolution{
		SubmissionID: sub.ID,
		AppID:        sub.AppID,
		UserID:       sub.UserID,
		Status:       decision,
		CoinsAwarded: awarded,
	}
	if notes != "" {
		resolution.AdminNotes = &notes
	}
	return resolution, nil
}

type SubmissionHistory struct {
	Submissions      []models.AppInstallationSubmission `json:"submissions"`
	TotalCoinsEarned int64                              `json:"total_coins_earned"`
}

// UserSubmissions returns the user's submissions, app preloaded, newest
// first, with the sum of rewards from approved ones.
func (s *AppService) UserSubmissions(userID string) (*SubmissionHistory, error) {
	var subs []models.AppInstallationSubmission
	if err := s.DB.Preload("App", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}

	var total int64
	for _, sub := range subs {
		if sub.Status == models.SubmissionStatusApproved && sub.App != nil {
			total += sub.App.RewardCoins
		}
	}
	return &SubmissionHistory{Submissions: subs, TotalCoinsEarned: total}, nil
}

// AllSubmissions returns submissions for admins, optionally by status.
func (s *AppService) AllSubmissions(status models.SubmissionStatus) ([]models.AppInstallationSubmission, error) {
	q := s.DB.Preload("App", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var subs []models.AppInstallationSubmission
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *AppService) uniqueSlug(name string) string {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := s.DB.Unscoped().Model(&models.App{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return candidate
		}
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
