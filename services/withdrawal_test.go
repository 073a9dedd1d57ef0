package services

import (
	"testing"

	"coin-rewards-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWithdrawalService(t *testing.T, db *gorm.DB) *WithdrawalService {
	t.Helper()
	return NewWithdrawalService(db, NewLedgerService(db), NewSettingsService(db))
}

func upiPayout() WithdrawalPayout {
	return WithdrawalPayout{UPIID: "someone@upi"}
}

func TestWithdrawalLifecycleRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newWithdrawalService(t, db)
	user := createTestUser(t, db, 0, 150)

	result, err := svc.Request(user.ID, 100, models.PaymentMethodUPI, upiPayout())
	require.NoError(t, err)
	require.Equal(t, models.WithdrawalStatusPending, result.Status)
	require.EqualValues(t, 50, result.RemainingWalletBalance)

	resolution, err := svc.Resolve(result.RequestID, models.WithdrawalStatusRejected, "document mismatch")
	require.NoError(t, err)
	require.Equal(t, models.WithdrawalStatusRejected, resolution.Status)
	require.EqualValues(t, 150, resolution.WalletBalance)
}

func TestWithdrawalLifecycleApproved(t *testing.T) {
	db := setupTestDB(t)
	svc := newWithdrawalService(t, db)
	user := createTestUser(t, db, 0, 150)

	result, err := svc.Request(user.ID, 100, models.PaymentMethodUPI, upiPayout())
	require.NoError(t, err)

	resolution, err := svc.Resolve(result.RequestID, models.WithdrawalStatusApproved, "")
	require.NoError(t, err)
	require.Equal(t, models.WithdrawalStatusApproved, resolution.Status)
	// Funds were escrowed at request time; approval settles externally.
	require.EqualValues(t, 50, resolution.WalletBalance)
}

func TestWithdrawalSinglePending(t *testing.T) {
	db := setupTestDB(t)
	svc := newWithdrawalService(t, db)
	user := createTestUser(t, db, 0, 500)

	_, err := svc.Request(user.ID, 100, models.PaymentMethodUPI, upiPayout())
	require.NoError(t, err)

	_, err = svc.Request(user.ID, 120, models.PaymentMethodUPI, upiPayout())
	require.ErrorIs(t, err, ErrPendingWithdrawalExists)

	// The second request must not have debited anything.
	_, wallet, err := NewLedgerService(db).Balances(user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 400, wallet)
}

func TestWithdrawalAfterResolutionAllowsNewRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := newWithdrawalService(t, db)
	user := createTestUser(t, db, 0, 500)

	first, err := svc.Request(user.ID, 100, models.PaymentMethodUPI, upiPayout())
	require.NoError(t, err)
	_, err = svc.Resolve(first.RequestID, models.WithdrawalStatusApproved, "")
	require.NoError(t, err)

	_, err = svc.Request(user.ID, 150, models.PaymentMethodUPI, upiPayout())
	require.NoError(t, err)
}

func TestWithdrawalResolveIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	svc := newWithdrawalService(t, db)
	user := createTestUser(t, db, 0, 200)

	result, err := svc.Request(user.ID, 100, models.PaymentMethodUPI, upiPayout())
	require.NoError(t, err)

	_, err = svc.Resolve(result.RequestID, models.WithdrawalStatusRejected, "")
	require.NoError(t, err)

	// A second resolve must not refund again.
	_, err = svc.Resolve(result.RequestID, models.WithdrawalStatusRejected, "")
	require.ErrorIs(t, err, ErrNotPending)

	_, wallet, err := NewLedgerService(db).Balances(user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 200, wallet)
}

func TestWithdrawalValidations(t *testing.T) {
	db := setupTestDB(t)
	svc := newWithdrawalService(t, db)
	user := createTestUser(t, db, 0, 500)

	_, err := svc.Request(user.ID, 0, models.PaymentMethodUPI, upiPayout())
	require.True(t, IsValidation(err))

	// Default minimum withdrawal amount is 100.
	_, err = svc.Request(user.ID, 99, models.PaymentMethodUPI, upiPayout())
	require.True(t, IsValidation(err))

	_, err = svc.Request(user.ID, 100, "PayPal", upiPayout())
	require.True(t, IsValidation(err))

	_, err = svc.Request(user.ID, 100, models.PaymentMethodUPI, WithdrawalPayout{})
	require.True(t, IsValidation(err))

	_, err = svc.Request(user.ID, 100, models.PaymentMethodBank, WithdrawalPayout{BankAccountNumber: "123"})
	require.True(t, IsValidation(err))

	_, err = svc.Request(user.ID, 600, models.PaymentMethodUPI, upiPayout())
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestWithdrawalListMasksAccountNumbers(t *testing.T) {
	db := setupTestDB(t)
	svc := newWithdrawalService(t, db)
	user := createTestUser(t, db, 0, 500)

	_, err := svc.Request(user.ID, 100, models.PaymentMethodBank, WithdrawalPayout{
		BankAccountNumber: "123456789012",
		BankIFSC:          "HDFC0001234",
		BankName:          "HDFC",
		AccountHolderName: "Asha",
	})
	require.NoError(t, err)

	requests, err := svc.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.NotNil(t, requests[0].BankAccountNumber)
	require.Equal(t, "********9012", *requests[0].BankAccountNumber)
}

func TestMaskAccountNumber(t *testing.T) {
	require.Equal(t, "****5678", MaskAccountNumber("12345678"))
	require.Equal(t, "1234", MaskAccountNumber("1234"))
}
