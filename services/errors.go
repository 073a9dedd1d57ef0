package services

import (
	"errors"
	"fmt"
)

// Engine-level rejections. Handlers translate these into HTTP statuses; the
// engines themselves never talk HTTP.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAppNotFound        = errors.New("app not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrAlreadyClaimed: the (user, kind, period) claim was already made.
	ErrAlreadyClaimed = errors.New("already claimed for this period")
	// ErrQuotaExceeded: the daily usage quota is exhausted.
	ErrQuotaExceeded = errors.New("daily quota exceeded")
	// ErrNothingToClaim: the configured amount is zero; no record is written
	// so the claim stays retryable once an amount is configured.
	ErrNothingToClaim = errors.New("no reward configured for this period")

	ErrInsufficientCoins   = errors.New("insufficient coins")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	ErrPendingWithdrawalExists = errors.New("a pending withdrawal request already exists")
	ErrNotPending              = errors.New("request is not pending")
	ErrPendingSubmissionExists = errors.New("a pending submission already exists for this app")
	ErrAlreadyApproved         = errors.New("an approved submission already exists for this app")

	ErrReferredByImmutable = errors.New("referred-by is already set and cannot change")
	ErrInvalidReferralCode = errors.New("invalid referral code")

	ErrMobileNumberTaken = errors.New("user with this mobile number already exists")
	ErrAdminEmailTaken   = errors.New("admin with this email already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserBlocked       = errors.New("user is blocked")

	ErrAppInactive = errors.New("app is not available for installation")
)

// ValidationError marks malformed or missing caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a caller-input problem.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
