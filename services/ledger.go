package services

import (
	"errors"

	"coin-rewards-system/models"

	"gorm.io/gorm"
)

// LedgerService owns every mutation of User.Coins and User.WalletBalance.
// All writes are single conditional UPDATEs with SQL-side arithmetic, never
// read-modify-write of a loaded struct, so concurrent rewards for the same
// user cannot lose updates and balances cannot go negative.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

func (s *LedgerService) CreditCoins(userID string, amount int64) error {
	return s.CreditCoinsTx(s.DB, userID, amount)
}

func (s *LedgerService) CreditCoinsTx(tx *gorm.DB, userID string, amount int64) error {
	if amount <= 0 {
		return Validationf("credit amount must be positive, got %d", amount)
	}
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("coins", gorm.Expr("coins + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *LedgerService) DebitCoins(userID string, amount int64) error {
	return s.DebitCoinsTx(s.DB, userID, amount)
}

// DebitCoinsTx fails with ErrInsufficientCoins instead of ever driving the
// balance below zero; the >= guard lives in the WHERE clause so two
// concurrent debits cannot both pass a stale check.
func (s *LedgerService) DebitCoinsTx(tx *gorm.DB, userID string, amount int64) error {
	if amount <= 0 {
		return Validationf("debit amount must be positive, got %d", amount)
	}
	res := tx.Model(&models.User{}).
		Where("id = ? AND coins >= ?", userID, amount).
		UpdateColumn("coins", gorm.Expr("coins - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := s.ensureUserExists(tx, userID); err != nil {
			return err
		}
		return ErrInsufficientCoins
	}
	return nil
}

func (s *LedgerService) CreditWallet(userID string, amount float64) error {
	return s.CreditWalletTx(s.DB, userID, amount)
}

func (s *LedgerService) CreditWalletTx(tx *gorm.DB, userID string, amount float64) error {
	if amount <= 0 {
		return Validationf("credit amount must be positive, got %v", amount)
	}
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *LedgerService) DebitWallet(userID string, amount float64) error {
	return s.DebitWalletTx(s.DB, userID, amount)
}

func (s *LedgerService) DebitWalletTx(tx *gorm.DB, userID string, amount float64) error {
	if amount <= 0 {
		return Validationf("debit amount must be positive, got %v", amount)
	}
	res := tx.Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := s.ensureUserExists(tx, userID); err != nil {
			return err
		}
		return ErrInsufficientBalance
	}
	return nil
}

// Credit applies a reward amount to whichever balance the reward type names.
func (s *LedgerService) Credit(userID string, rewardType models.RewardType, amount int64) error {
	return s.CreditTx(s.DB, userID, rewardType, amount)
}

func (s *LedgerService) CreditTx(tx *gorm.DB, userID string, rewardType models.RewardType, amount int64) error {
	if rewardType == models.RewardTypeWallet {
		return s.CreditWalletTx(tx, userID, float64(amount))
	}
	return s.CreditCoinsTx(tx, userID, amount)
}

// SetReferredBy sets the write-once referral marker. It only matches rows
// where referred_by is still NULL, so a second write can never overwrite the
// first regardless of how the request arrives.
func (s *LedgerService) SetReferredBy(userID, referCode string) error {
	res := s.DB.Model(&models.User{}).
		Where("id = ? AND referred_by IS NULL", userID).
		UpdateColumn("referred_by", referCode)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := s.ensureUserExists(s.DB, userID); err != nil {
			return err
		}
		return ErrReferredByImmutable
	}
	return nil
}

// Balances returns the user's current coins and wallet balance.
func (s *LedgerService) Balances(userID string) (coins int64, wallet float64, err error) {
	var user models.User
	if err := s.DB.Select("coins", "wallet_balance").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrUserNotFound
		}
		return 0, 0, err
	}
	return user.Coins, user.WalletBalance, nil
}

func (s *LedgerService) ensureUserExists(tx *gorm.DB, userID string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}
