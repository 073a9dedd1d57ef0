package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the service owns. main and the
// test helpers share it so both run the identical schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Admin{},
		&CaptchaSettings{},
		&CaptchaSolve{},
		&DailyBonusSettings{},
		&DailyBonusClaim{},
		&ScratchCardSettings{},
		&ScratchCardClaim{},
		&DailySpinSettings{},
		&DailySpinUsage{},
		&ReferralSettings{},
		&CoinConversionSettings{},
		&WithdrawalSettings{},
		&WithdrawalRequest{},
		&App{},
		&AppInstallationSubmission{},
	)
}
