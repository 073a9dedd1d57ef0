package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coin-rewards-system/middleware"
	"coin-rewards-system/models"
	"coin-rewards-system/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	ledger := services.NewLedgerService(db)
	gate := services.NewClaimGate(db)
	settings := services.NewSettingsService(db)
	referral := services.NewReferralService(db, ledger, settings)

	app := fiber.New()
	SetupUserRoutes(app, &UserHandlers{
		Users:       services.NewUserService(db, ledger, referral),
		Ledger:      ledger,
		Referral:    referral,
		Captcha:     services.NewCaptchaService(db, ledger, gate, settings),
		DailyBonus:  services.NewDailyBonusService(db, ledger, gate, settings),
		Scratch:     services.NewScratchCardService(db, ledger, gate, settings),
		Spin:        services.NewDailySpinService(db, gate, settings),
		Conversion:  services.NewConversionService(db, ledger, settings),
		Withdrawals: services.NewWithdrawalService(db, ledger, settings),
		Apps:        services.NewAppService(db, ledger),
	})
	return app, db
}

func authedUser(t *testing.T, db *gorm.DB) (string, string) {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		MobileNumber: "9" + uuid.NewString()[:9],
		Password:     "not-a-real-hash",
		ReferCode:    uuid.NewString()[:6],
	}
	require.NoError(t, db.Create(user).Error)
	token, err := middleware.GenerateUserToken(user.ID)
	require.NoError(t, err)
	return user.ID, token
}

func postJSON(t *testing.T, app *fiber.App, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestSolveCaptchaLimitRejectionReportsUsage(t *testing.T) {
	app, db := setupTestApp(t)
	require.NoError(t, db.Create(&models.CaptchaSettings{
		ID:                models.SingletonID,
		DailyCaptchaLimit: 1,
		RewardPerCaptcha:  1,
		RewardType:        models.RewardTypeCoins,
	}).Error)
	_, token := authedUser(t, db)

	resp := postJSON(t, app, "/api/users/captcha/solve", token, `{"answer":"ABC12"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/api/users/captcha/solve", token, `{"answer":"ABC12"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.False(t, env.Success)

	var data struct {
		TodaySolves int64 `json:"today_solves"`
		DailyLimit  int64 `json:"daily_limit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.EqualValues(t, 1, data.TodaySolves)
	require.EqualValues(t, 1, data.DailyLimit)
}

func TestUseSpinsLimitRejectionReportsUsage(t *testing.T) {
	app, db := setupTestApp(t)
	require.NoError(t, db.Create(&models.DailySpinSettings{
		ID:             models.SingletonID,
		DailySpinLimit: 2,
	}).Error)
	_, token := authedUser(t, db)

	resp := postJSON(t, app, "/api/users/dailyspin/use", token, `{"count":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/api/users/dailyspin/use", token, `{"count":1}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.False(t, env.Success)

	var data struct {
		SpinsUsedToday int64 `json:"spins_used_today"`
		DailyLimit     int64 `json:"daily_limit"`
		SpinsRemaining int64 `json:"spins_remaining"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.EqualValues(t, 2, data.SpinsUsedToday)
	require.EqualValues(t, 2, data.DailyLimit)
	require.EqualValues(t, 0, data.SpinsRemaining)
}
