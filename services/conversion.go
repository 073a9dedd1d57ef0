package services

import (
	"gorm.io/gorm"
)

// ConversionService exchanges coins for wallet balance at the configured
// rate. Debit and credit run in one transaction so a crash between them
// cannot strand value on either side.
type ConversionService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Settings *SettingsService
}

func NewConversionService(db *gorm.DB, ledger *LedgerService, settings *SettingsService) *ConversionService {
	return &ConversionService{DB: db, Ledger: ledger, Settings: settings}
}

type ConversionResult struct {
	CoinsConverted int64   `json:"coins_converted"`
	RupeesAdded    float64 `json:"rupees_added"`
	ConversionRate float64 `json:"conversion_rate"`
	RemainingCoins int64   `json:"remaining_coins"`
	WalletBalance  float64 `json:"wallet_balance"`
}

// Convert debits coins and credits coins/CoinsPerRupee to the wallet.
// Fractional rupees are kept as-is; rounding is a display concern.
func (s *ConversionService) Convert(userID string, coins int64) (*ConversionResult, error) {
	if coins <= 0 {
		return nil, Validationf("coins must be greater than 0")
	}

	settings, err := s.Settings.Conversion()
	if err != nil {
		return nil, err
	}
	if settings.CoinsPerRupee <= 0 {
		// Admin writes validate the rate, so this only trips on a hand-edited
		// row; refuse rather than divide by zero or mint infinite rupees.
		return nil, Validationf("conversion rate is not configured")
	}
	if coins < settings.MinimumCoinsToConvert {
		return nil, Validationf("minimum %d coins required to convert", settings.MinimumCoinsToConvert)
	}

	rupees := float64(coins) / settings.CoinsPerRupee

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Ledger.DebitCoinsTx(tx, userID, coins); err != nil {
			return err
		}
		return s.Ledger.CreditWalletTx(tx, userID, rupees)
	})
	if err != nil {
		return nil, err
	}

	remaining, wallet, err := s.Ledger.Balances(userID)
	if err != nil {
		return nil, err
	}
	return &ConversionResult{
		CoinsConverted: coins,
		RupeesAdded:    rupees,
		ConversionRate: settings.CoinsPerRupee,
		RemainingCoins: remaining,
		WalletBalance:  wallet,
	}, nil
}

type ConversionRateInfo struct {
	CoinsPerRupee         float64 `json:"coins_per_rupee"`
	MinimumCoinsToConvert int64   `json:"minimum_coins_to_convert"`
	UserCoins             int64   `json:"user_coins"`
	RupeesValue           float64 `json:"rupees_value"`
	CanConvert            bool    `json:"can_convert"`
}

// Rate reports the current rate and what the user's coins are worth.
func (s *ConversionService) Rate(userID string) (*ConversionRateInfo, error) {
	settings, err := s.Settings.Conversion()
	if err != nil {
		return nil, err
	}
	coins, _, err := s.Ledger.Balances(userID)
	if err != nil {
		return nil, err
	}
	info := &ConversionRateInfo{
		CoinsPerRupee:         settings.CoinsPerRupee,
		MinimumCoinsToConvert: settings.MinimumCoinsToConvert,
		UserCoins:             coins,
		CanConvert:            coins >= settings.MinimumCoinsToConvert,
	}
	if settings.CoinsPerRupee > 0 {
		info.RupeesValue = float64(coins) / settings.CoinsPerRupee
	}
	return info, nil
}
