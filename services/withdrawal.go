package services

import (
	"errors"
	"strings"

	"coin-rewards-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WithdrawalService implements escrow-on-request: funds leave the wallet
// when the request is created, approval settles externally with no ledger
// effect, rejection refunds.
type WithdrawalService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Settings *SettingsService
}

func NewWithdrawalService(db *gorm.DB, ledger *LedgerService, settings *SettingsService) *WithdrawalService {
	return &WithdrawalService{DB: db, Ledger: ledger, Settings: settings}
}

type WithdrawalPayout struct {
	UPIID             string `json:"upi_id"`
	VirtualID         string `json:"virtual_id"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIFSC          string `json:"bank_ifsc"`
	BankName          string `json:"bank_name"`
	AccountHolderName string `json:"account_holder_name"`
}

type WithdrawalResult struct {
	RequestID              string                  `json:"request_id"`
	Amount                 float64                 `json:"amount"`
	PaymentMethod          models.PaymentMethod    `json:"payment_method"`
	Status                 models.WithdrawalStatus `json:"status"`
	RemainingWalletBalance float64                 `json:"remaining_wallet_balance"`
}

// Request validates and creates a Pending request, debiting the wallet in
// the same transaction. The partial unique index on (user_id) WHERE
// status = 'Pending' is what actually holds the single-pending invariant
// under concurrency: the loser's insert fails and its debit rolls back.
func (s *WithdrawalService) Request(userID string, amount float64, method models.PaymentMethod, payout WithdrawalPayout) (*WithdrawalResult, error) {
	if amount <= 0 {
		return nil, Validationf("amount is required and must be greater than 0")
	}
	if method != models.PaymentMethodUPI && method != models.PaymentMethodBank {
		return nil, Validationf("payment method must be either 'UPI' or 'BankTransfer'")
	}
	if err := validatePayout(method, payout); err != nil {
		return nil, err
	}

	settings, err := s.Settings.Withdrawal()
	if err != nil {
		return nil, err
	}
	if amount < settings.MinimumWithdrawalAmount {
		return nil, Validationf("minimum withdrawal amount is %v", settings.MinimumWithdrawalAmount)
	}

	req := models.WithdrawalRequest{
		ID:                uuid.NewString(),
		UserID:            userID,
		Amount:            amount,
		PaymentMethod:     method,
		UPIID:             optional(payout.UPIID),
		VirtualID:         optional(payout.VirtualID),
		BankAccountNumber: optional(payout.BankAccountNumber),
		BankIFSC:          optional(payout.BankIFSC),
		BankName:          optional(payout.BankName),
		AccountHolderName: optional(payout.AccountHolderName),
		Status:            models.WithdrawalStatusPending,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&models.WithdrawalRequest{}).
			Where("user_id = ? AND status = ?", userID, models.WithdrawalStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrPendingWithdrawalExists
		}
		if err := s.Ledger.DebitWalletTx(tx, userID, amount); err != nil {
			return err
		}
		if err := tx.Create(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPendingWithdrawalExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, wallet, err := s.Ledger.Balances(userID)
	if err != nil {
		return nil, err
	}
	return &WithdrawalResult{
		RequestID:              req.ID,
		Amount:                 req.Amount,
		PaymentMethod:          req.PaymentMethod,
		Status:                 req.Status,
		RemainingWalletBalance: wallet,
	}, nil
}

type WithdrawalResolution struct {
	RequestID     string                  `json:"request_id"`
	Amount        float64                 `json:"amount"`
	PaymentMethod models.PaymentMethod    `json:"payment_method"`
	Status        models.WithdrawalStatus `json:"status"`
	AdminNotes    *string                 `json:"admin_notes,omitempty"`
	WalletBalance float64                 `json:"wallet_balance"`
}

// Resolve transitions a Pending request to Approved or Rejected. The status
// flip is a conditional update so two admins cannot both resolve it; the
// refund on rejection happens in the same transaction as the flip.
func (s *WithdrawalService) Resolve(requestID string, decision models.WithdrawalStatus, notes string) (*WithdrawalResolution, error) {
	if decision != models.WithdrawalStatusApproved && decision != models.WithdrawalStatusRejected {
		return nil, Validationf("status must be either 'Approved' or 'Rejected'")
	}

	var req models.WithdrawalRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		updates := map[string]any{"status": decision}
		if notes != "" {
			updates["admin_notes"] = notes
		}
		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, models.WithdrawalStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		if decision == models.WithdrawalStatusRejected {
			// Funds were escrowed at request time; give them back.
			if err := s.Ledger.CreditWalletTx(tx, req.UserID, req.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, wallet, err := s.Ledger.Balances(req.UserID)
	if err != nil {
		return nil, err
	}
	resolution := &WithdrawalResolution{
		RequestID:     req.ID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        decision,
		WalletBalance: wallet,
	}
	if notes != "" {
		resolution.AdminNotes = &notes
	}
	return resolution, nil
}

// ListForUser returns the user's requests, newest first, with bank account
// numbers masked to the last four digits.
func (s *WithdrawalService) ListForUser(userID string) ([]models.WithdrawalRequest, error) {
	var requests []models.WithdrawalRequest
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].BankAccountNumber != nil {
			masked := MaskAccountNumber(*requests[i].BankAccountNumber)
			requests[i].BankAccountNumber = &masked
		}
	}
	return requests, nil
}

// ListAll returns all requests for admins, optionally filtered by status.
func (s *WithdrawalService) ListAll(status models.WithdrawalStatus) ([]models.WithdrawalRequest, error) {
	q := s.DB.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var requests []models.WithdrawalRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// MaskAccountNumber hides all but the last four characters.
func MaskAccountNumber(account string) string {
	if len(account) <= 4 {
		return account
	}
	return strings.Repeat("*", len(account)-4) + account[len(account)-4:]
}

func validatePayout(method models.PaymentMethod, payout WithdrawalPayout) error {
	switch method {
	case models.PaymentMethodUPI:
		if payout.UPIID == "" && payout.VirtualID == "" {
			return Validationf("upi id or virtual id is required for UPI payment method")
		}
	case models.PaymentMethodBank:
		if payout.BankAccountNumber == "" || payout.BankIFSC == "" || payout.BankName == "" || payout.AccountHolderName == "" {
			return Validationf("bank account number, IFSC, bank name and account holder name are required for bank transfer")
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
