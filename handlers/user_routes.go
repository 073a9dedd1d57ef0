// handlers/user_routes.go
package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"coin-rewards-system/middleware"
	"coin-rewards-system/models"
	"coin-rewards-system/services"
	"coin-rewards-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandlers struct {
	Users       *services.UserService
	Ledger      *services.LedgerService
	Referral    *services.ReferralService
	Captcha     *services.CaptchaService
	DailyBonus  *services.DailyBonusService
	Scratch     *services.ScratchCardService
	Spin        *services.DailySpinService
	Conversion  *services.ConversionService
	Withdrawals *services.WithdrawalService
	Apps        *services.AppService
}

func SetupUserRoutes(app *fiber.App, h *UserHandlers) {
	users := app.Group("/api/users")

	users.Post("/signup", h.Signup)
	users.Post("/login", h.Login)

	secured := users.Group("/", middleware.UserAuthMiddleware())

	secured.Get("/profile", h.Profile)
	secured.Get("/wallet", h.Wallet)
	secured.Get("/refercode", h.ReferCode)

	secured.Get("/captcha", h.IssueCaptcha)
	secured.Post("/captcha/solve", h.SolveCaptcha)

	secured.Get("/dailybonus", h.DailyBonusWeek)
	secured.Post("/dailybonus/claim", h.ClaimDailyBonus)

	secured.Get("/scratchcard", h.ScratchCardInfo)
	secured.Post("/scratchcard/claim", h.ClaimScratchCard)
	secured.Get("/scratchcard/history", h.ScratchCardHistory)

	secured.Get("/dailyspin", h.SpinUsage)
	secured.Post("/dailyspin/use", h.UseSpins)

	secured.Get("/coinconversion/rate", h.ConversionRate)
	secured.Post("/coinconversion/convert", h.ConvertCoins)

	secured.Post("/withdrawal/request", h.RequestWithdrawal)
	secured.Get("/withdrawal/requests", h.MyWithdrawals)

	secured.Get("/apps", h.ListApps)
	secured.Get("/apps/submissions", h.MySubmissions)
	secured.Post("/apps/:appId/submit", h.SubmitApp)
}

type signupRequest struct {
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
	DeviceID     string `json:"device_id"`
	ReferralCode string `json:"referral_code"`
}

func (h *UserHandlers) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}

	user, err := h.Users.Signup(req.MobileNumber, req.Password, req.DeviceID, req.ReferralCode)
	if err != nil {
		return fail(c, err)
	}
	token, err := middleware.GenerateUserToken(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "signup successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

type loginRequest struct {
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

func (h *UserHandlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}

	user, err := h.Users.Login(req.MobileNumber, req.Password)
	if err != nil {
		return fail(c, err)
	}
	token, err := middleware.GenerateUserToken(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *UserHandlers) Profile(c *fiber.Ctx) error {
	user, err := h.Users.ByID(userID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "profile fetched", user)
}

func (h *UserHandlers) Wallet(c *fiber.Ctx) error {
	coins, wallet, err := h.Ledger.Balances(userID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "wallet fetched", fiber.Map{
		"coins":          coins,
		"wallet_balance": wallet,
	})
}

func (h *UserHandlers) ReferCode(c *fiber.Ctx) error {
	user, err := h.Users.ByID(userID(c))
	if err != nil {
		return fail(c, err)
	}
	stats, err := h.Referral.Stats(user)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "refer code fetched", stats)
}

func (h *UserHandlers) IssueCaptcha(c *fiber.Ctx) error {
	used, limit, err := h.Captcha.Usage(userID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "captcha issued", fiber.Map{
		"captcha":      h.Captcha.Issue(),
		"today_solves": used,
		"daily_limit":  limit,
	})
}

type solveCaptchaRequest struct {
	Answer string `json:"answer"`
}

func (h *UserHandlers) SolveCaptcha(c *fiber.Ctx) error {
	var req solveCaptchaRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	result, err := h.Captcha.Solve(userID(c), strings.ToUpper(strings.TrimSpace(req.Answer)), time.Now())
	if errors.Is(err, services.ErrQuotaExceeded) && result != nil {
		// The rejection still reports where the user stands against the limit.
		return failWith(c, err, result)
	}
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "captcha solved", result)
}

func (h *UserHandlers) DailyBonusWeek(c *fiber.Ctx) error {
	week, err := h.DailyBonus.Week(userID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "daily bonus fetched", week)
}

func (h *UserHandlers) ClaimDailyBonus(c *fiber.Ctx) error {
	result, err := h.DailyBonus.Claim(userID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "daily bonus claimed", result)
}

func (h *UserHandlers) ScratchCardInfo(c *fiber.Ctx) error {
	info, err := h.Scratch.Info(userID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "scratch card fetched", info)
}

func (h *UserHandlers) ClaimScratchCard(c *fiber.Ctx) error {
	result, err := h.Scratch.Claim(userID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "scratch card claimed", result)
}

func (h *UserHandlers) ScratchCardHistory(c *fiber.Ctx) error {
	history, err := h.Scratch.History(userID(c), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "scratch card history fetched", history)
}

func (h *UserHandlers) SpinUsage(c *fiber.Ctx) error {
	state, err := h.Spin.Usage(userID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "daily spin fetched", state)
}

type useSpinsRequest struct {
	Count int64 `json:"count"`
}

func (h *UserHandlers) UseSpins(c *fiber.Ctx) error {
	req := useSpinsRequest{Count: 1}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, services.Validationf("invalid request body"))
		}
	}
	state, err := h.Spin.Use(userID(c), req.Count, time.Now())
	if errors.Is(err, services.ErrQuotaExceeded) && state != nil {
		return failWith(c, err, state)
	}
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "spins used", state)
}

func (h *UserHandlers) ConversionRate(c *fiber.Ctx) error {
	info, err := h.Conversion.Rate(userID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "conversion rate fetched", info)
}

type convertRequest struct {
	Coins int64 `json:"coins"`
}

func (h *UserHandlers) ConvertCoins(c *fiber.Ctx) error {
	var req convertRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	result, err := h.Conversion.Convert(userID(c), req.Coins)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "coins converted", result)
}

type withdrawalRequestBody struct {
	Amount        float64                   `json:"amount"`
	PaymentMethod models.PaymentMethod      `json:"payment_method"`
	Payout        services.WithdrawalPayout `json:"payout"`
}

func (h *UserHandlers) RequestWithdrawal(c *fiber.Ctx) error {
	var req withdrawalRequestBody
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	result, err := h.Withdrawals.Request(userID(c), req.Amount, req.PaymentMethod, req.Payout)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "withdrawal requested", result)
}

func (h *UserHandlers) MyWithdrawals(c *fiber.Ctx) error {
	requests, err := h.Withdrawals.ListForUser(userID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "withdrawal requests fetched", requests)
}

func (h *UserHandlers) ListApps(c *fiber.Ctx) error {
	listings, err := h.Apps.ListForUser(userID(c), c.Query("filter"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "apps fetched", listings)
}

func (h *UserHandlers) MySubmissions(c *fiber.Ctx) error {
	history, err := h.Apps.UserSubmissions(userID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "submissions fetched", history)
}

type submitAppRequest struct {
	ScreenshotBase64 string `json:"screenshot_base64"`
	ScreenshotURL    string `json:"screenshot_url"`
}

// SubmitApp accepts the screenshot as a multipart "screenshot" file, a
// base64 body field, or a pre-uploaded URL, in that order of preference.
func (h *UserHandlers) SubmitApp(c *fiber.Ctx) error {
	screenshotURL, err := h.resolveScreenshot(c)
	if err != nil {
		return fail(c, err)
	}
	sub, err := h.Apps.Submit(userID(c), c.Params("appId"), screenshotURL)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "submission received", sub)
}

func (h *UserHandlers) resolveScreenshot(c *fiber.Ctx) (string, error) {
	if fileHeader, err := c.FormFile("screenshot"); err == nil {
		filename := uuid.NewString() + filepath.Ext(fileHeader.Filename)
		if utils.S3Enabled() {
			url, err := utils.UploadFileToS3(fileHeader, "screenshots/"+filename)
			if err != nil {
				log.Printf("❌ [APPS] screenshot upload failed: %v", err)
				return "", err
			}
			return url, nil
		}
		if err := utils.SaveFile(fileHeader, utils.GetUploadPath(filename)); err != nil {
			log.Printf("❌ [APPS] local screenshot save failed: %v", err)
			return "", err
		}
		return "/uploads/" + filename, nil
	}

	var req submitAppRequest
	if err := c.BodyParser(&req); err != nil {
		return "", services.Validationf("screenshot is required")
	}
	if req.ScreenshotBase64 != "" {
		raw := req.ScreenshotBase64
		contentType := "image/png"
		if i := strings.Index(raw, ";base64,"); i > 0 {
			contentType = strings.TrimPrefix(raw[:i], "data:")
			raw = raw[i+len(";base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return "", services.Validationf("invalid base64 screenshot")
		}
		if utils.S3Enabled() {
			key := fmt.Sprintf("screenshots/%s.png", uuid.NewString())
			return utils.UploadBytesToS3(data, key, contentType)
		}
		return "", services.Validationf("base64 screenshot upload requires object storage")
	}
	if req.ScreenshotURL != "" {
		return req.ScreenshotURL, nil
	}
	return "", services.Validationf("screenshot is required")
}
