package services

import (
	"errors"
	"log"

	"coin-rewards-system/models"
	"coin-rewards-system/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Referral *ReferralService
}

func NewUserService(db *gorm.DB, ledger *LedgerService, referral *ReferralService) *UserService {
	return &UserService{DB: db, Ledger: ledger, Referral: referral}
}

// Signup creates a user, assigning a unique refer code and applying referral
// rewards when a valid code is supplied. The referrer credit is best-effort:
// its failure is logged and never fails the signup.
func (s *UserService) Signup(mobileNumber, password, deviceID, referralCode string) (*models.User, error) {
	if mobileNumber == "" || password == "" {
		return nil, Validationf("mobile number and password are required")
	}

	var existing int64
	if err := s.DB.Model(&models.User{}).Where("mobile_number = ?", mobileNumber).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrMobileNumberTaken
	}

	var referrer *models.User
	if referralCode != "" {
		r, err := s.Referral.Referrer(referralCode)
		if err != nil {
			return nil, err
		}
		referrer = r
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	referCode, err := s.uniqueReferCode()
	if err != nil {
		return nil, err
	}

	var initialCoins int64
	var initialWallet float64
	if referrer != nil {
		amount, rewardType, err := s.Referral.NewUserReward()
		if err != nil {
			return nil, err
		}
		if amount > 0 {
			if rewardType == models.RewardTypeWallet {
				initialWallet = float64(amount)
			} else {
				initialCoins = amount
			}
		}
	}

	user := models.User{
		ID:            uuid.NewString(),
		MobileNumber:  mobileNumber,
		Password:      string(hashed),
		ReferCode:     referCode,
		Coins:         initialCoins,
		WalletBalance: initialWallet,
	}
	if deviceID != "" {
		user.DeviceID = &deviceID
	}
	if referrer != nil {
		user.ReferredBy = &referralCode
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMobileNumberTaken
		}
		return nil, err
	}

	if referrer != nil {
		if err := s.Referral.RewardReferrer(referrer.ID); err != nil {
			log.Printf("[SIGNUP] referrer reward failed for %s (new user %s): %v", referrer.ID, user.ID, err)
		}
	}

	return &user, nil
}

func (s *UserService) Login(mobileNumber, password string) (*models.User, error) {
	if mobileNumber == "" || password == "" {
		return nil, Validationf("mobile number and password are required")
	}
	var user models.User
	if err := s.DB.First(&user, "mobile_number = ?", mobileNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}
	return &user, nil
}

func (s *UserService) ByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns a page of users matching the search term (mobile, device or
// refer code) plus the total count.
func (s *UserService) List(page, limit int, search string) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	q := s.DB.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("mobile_number LIKE ? OR device_id LIKE ? OR refer_code LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UserDetail is the admin view of a user: the record plus activity
// aggregates.
type UserDetail struct {
	User             models.User `json:"user"`
	CaptchaSolves    int64       `json:"captcha_solves"`
	DailyBonusWeeks  int64       `json:"daily_bonus_weeks"`
	ScratchCards     int64       `json:"scratch_cards"`
	SpinsUsed        int64       `json:"spins_used"`
	AppSubmissions   int64       `json:"app_submissions"`
	WithdrawalsTotal int64       `json:"withdrawals_total"`
}

func (s *UserService) Detail(id string) (*UserDetail, error) {
	user, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	detail := UserDetail{User: *user}

	counts := []struct {
		model any
		out   *int64
	}{
		{&models.CaptchaSolve{}, &detail.CaptchaSolves},
		{&models.DailyBonusClaim{}, &detail.DailyBonusWeeks},
		{&models.ScratchCardClaim{}, &detail.ScratchCards},
		{&models.AppInstallationSubmission{}, &detail.AppSubmissions},
		{&models.WithdrawalRequest{}, &detail.WithdrawalsTotal},
	}
	for _, c := range counts {
		if err := s.DB.Model(c.model).Where("user_id = ?", id).Count(c.out).Error; err != nil {
			return nil, err
		}
	}

	var spins *int64
	if err := s.DB.Model(&models.DailySpinUsage{}).
		Where("user_id = ?", id).
		Select("COALESCE(SUM(spin_count), 0)").
		Scan(&spins).Error; err != nil {
		return nil, err
	}
	if spins != nil {
		detail.SpinsUsed = *spins
	}
	return &detail, nil
}

func (s *UserService) SetBlocked(id string, blocked bool) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", id).UpdateColumn("is_blocked", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AdminSignup creates an admin account with a hashed password.
func (s *UserService) AdminSignup(email, password string) (*models.Admin, error) {
	if email == "" || password == "" {
		return nil, Validationf("email and password are required")
	}
	var existing int64
	if err := s.DB.Model(&models.Admin{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAdminEmailTaken
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := models.Admin{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashed),
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminEmailTaken
		}
		return nil, err
	}
	return &admin, nil
}

func (s *UserService) AdminLogin(email, password string) (*models.Admin, error) {
	if email == "" || password == "" {
		return nil, Validationf("email and password are required")
	}
	var admin models.Admin
	if err := s.DB.First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return &admin, nil
}

func (s *UserService) uniqueReferCode() (string, error) {
	for {
		code := utils.GenerateReferCode()
		var count int64
		if err := s.DB.Model(&models.User{}).Where("refer_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}
