package services

import (
	"regexp"
	"testing"
	"time"

	"coin-rewards-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	ledger := NewLedgerService(db)
	referral := NewReferralService(db, ledger, NewSettingsService(db))
	return NewUserService(db, ledger, referral)
}

var referCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{2}[A-Z]$`)

func TestSignupAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	user, err := svc.Signup("9876543210", "s3cret", "device-1", "")
	require.NoError(t, err)
	require.Regexp(t, referCodePattern, user.ReferCode)
	require.NotEqual(t, "s3cret", user.Password)
	require.Nil(t, user.ReferredBy)
	require.EqualValues(t, 0, user.Coins)

	got, err := svc.Login("9876543210", "s3cret")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = svc.Login("9876543210", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Login("0000000000", "s3cret")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignupDuplicateMobile(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	_, err := svc.Signup("9876543210", "s3cret", "", "")
	require.NoError(t, err)

	_, err = svc.Signup("9876543210", "other", "", "")
	require.ErrorIs(t, err, ErrMobileNumberTaken)
}

func TestSignupRequiresCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	_, err := svc.Signup("", "s3cret", "", "")
	require.True(t, IsValidation(err))
	_, err = svc.Signup("9876543210", "", "", "")
	require.True(t, IsValidation(err))
}

func TestSignupWithReferralRewardsBothSides(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.ReferralSettings{
		ID:                models.SingletonID,
		RewardForNewUser:  25,
		RewardForReferrer: 50,
		RewardType:        models.RewardTypeCoins,
	}).Error)
	svc := newUserService(t, db)

	referrer, err := svc.Signup("9000000001", "s3cret", "", "")
	require.NoError(t, err)

	referred, err := svc.Signup("9000000002", "s3cret", "", referrer.ReferCode)
	require.NoError(t, err)
	require.NotNil(t, referred.ReferredBy)
	require.Equal(t, referrer.ReferCode, *referred.ReferredBy)
	require.EqualValues(t, 25, referred.Coins)

	coins, _, err := NewLedgerService(db).Balances(referrer.ID)
	require.NoError(t, err)
	require.EqualValues(t, 50, coins)
}

func TestSignupRejectsUnknownReferralCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	_, err := svc.Signup("9000000001", "s3cret", "", "ZZZ99Z")
	require.ErrorIs(t, err, ErrInvalidReferralCode)
}

func TestBlockedUserCannotLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	user, err := svc.Signup("9876543210", "s3cret", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.SetBlocked(user.ID, true))
	_, err = svc.Login("9876543210", "s3cret")
	require.ErrorIs(t, err, ErrUserBlocked)

	require.NoError(t, svc.SetBlocked(user.ID, false))
	_, err = svc.Login("9876543210", "s3cret")
	require.NoError(t, err)
}

func TestUserListSearchAndPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	for _, mobile := range []string{"9000000001", "9000000002", "8000000003"} {
		_, err := svc.Signup(mobile, "s3cret", "", "")
		require.NoError(t, err)
	}

	users, total, err := svc.List(1, 10, "900")
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 2)

	users, total, err = svc.List(1, 1, "")
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, users, 1)
}

func TestUserDetailAggregates(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	user, err := svc.Signup("9876543210", "s3cret", "", "")
	require.NoError(t, err)

	spin := NewDailySpinService(db, NewClaimGate(db), NewSettingsService(db))
	_, err = spin.Use(user.ID, 4, time.Now())
	require.NoError(t, err)

	detail, err := svc.Detail(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, detail.User.ID)
	require.EqualValues(t, 4, detail.SpinsUsed)

	_, err = svc.Detail("missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminSignupAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	admin, err := svc.AdminSignup("ops@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", admin.Password)

	_, err = svc.AdminSignup("ops@example.com", "again")
	require.ErrorIs(t, err, ErrAdminEmailTaken)

	got, err := svc.AdminLogin("ops@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, admin.ID, got.ID)

	_, err = svc.AdminLogin("ops@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)
}
