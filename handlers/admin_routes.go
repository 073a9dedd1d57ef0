// handlers/admin_routes.go
package handlers

import (
	"coin-rewards-system/middleware"
	"coin-rewards-system/models"
	"coin-rewards-system/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandlers struct {
	Users       *services.UserService
	Settings    *services.SettingsService
	Withdrawals *services.WithdrawalService
	Apps        *services.AppService
}

func SetupAdminRoutes(app *fiber.App, h *AdminHandlers) {
	admin := app.Group("/api/admin")

	admin.Post("/signup", h.Signup)
	admin.Post("/login", h.Login)

	secured := admin.Group("/", middleware.AdminAuthMiddleware())

	secured.Get("/captcha/settings", h.GetCaptchaSettings)
	secured.Post("/captcha/settings", h.UpdateCaptchaSettings)
	secured.Get("/dailybonus/settings", h.GetDailyBonusSettings)
	secured.Post("/dailybonus/settings", h.UpdateDailyBonusSettings)
	secured.Get("/scratchcard/settings", h.GetScratchCardSettings)
	secured.Post("/scratchcard/settings", h.UpdateScratchCardSettings)
	secured.Get("/dailyspin/settings", h.GetDailySpinSettings)
	secured.Post("/dailyspin/settings", h.UpdateDailySpinSettings)
	secured.Get("/referral/settings", h.GetReferralSettings)
	secured.Post("/referral/settings", h.UpdateReferralSettings)
	secured.Get("/coinconversion/settings", h.GetConversionSettings)
	secured.Post("/coinconversion/settings", h.UpdateConversionSettings)
	secured.Get("/withdrawal/threshold", h.GetWithdrawalSettings)
	secured.Post("/withdrawal/threshold", h.UpdateWithdrawalSettings)

	secured.Get("/withdrawal/requests", h.ListWithdrawals)
	secured.Post("/withdrawal/request/:requestId/status", h.ResolveWithdrawal)

	secured.Get("/users", h.ListUsers)
	secured.Get("/users/:userId", h.UserDetail)
	secured.Post("/users/:userId/block", h.BlockUser)
	secured.Post("/users/:userId/unblock", h.UnblockUser)

	secured.Post("/apps", h.CreateApp)
	secured.Get("/apps", h.ListApps)
	secured.Get("/apps/submissions", h.ListSubmissions)
	secured.Post("/apps/submissions/:submissionId/status", h.ResolveSubmission)
	secured.Get("/apps/:appId", h.GetApp)
	secured.Put("/apps/:appId", h.UpdateApp)
	secured.Delete("/apps/:appId", h.DeleteApp)
}

type adminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandlers) Signup(c *fiber.Ctx) error {
	var req adminCredentials
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	admin, err := h.Users.AdminSignup(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	token, err := middleware.GenerateAdminToken(admin.ID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "admin created", fiber.Map{
		"token": token,
		"admin": fiber.Map{"id": admin.ID, "email": admin.Email},
	})
}

func (h *AdminHandlers) Login(c *fiber.Ctx) error {
	var req adminCredentials
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	admin, err := h.Users.AdminLogin(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	token, err := middleware.GenerateAdminToken(admin.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "login successful", fiber.Map{
		"token": token,
		"admin": fiber.Map{"id": admin.ID, "email": admin.Email},
	})
}

func (h *AdminHandlers) GetCaptchaSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.Captcha()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "captcha settings fetched", settings)
}

type captchaSettingsRequest struct {
	DailyCaptchaLimit int64             `json:"daily_captcha_limit"`
	RewardPerCaptcha  int64             `json:"reward_per_captcha"`
	RewardType        models.RewardType `json:"reward_type"`
}

func (h *AdminHandlers) UpdateCaptchaSettings(c *fiber.Ctx) error {
	var req captchaSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	settings, err := h.Settings.UpdateCaptcha(req.DailyCaptchaLimit, req.RewardPerCaptcha, req.RewardType)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "captcha settings updated", settings)
}

func (h *AdminHandlers) GetDailyBonusSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.DailyBonus()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "daily bonus settings fetched", settings)
}

func (h *AdminHandlers) UpdateDailyBonusSettings(c *fiber.Ctx) error {
	var req models.DailyBonusSettings
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	settings, err := h.Settings.UpdateDailyBonus(req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "daily bonus settings updated", settings)
}

func (h *AdminHandlers) GetScratchCardSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.ScratchCard()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "scratch card settings fetched", settings)
}

func (h *AdminHandlers) UpdateScratchCardSettings(c *fiber.Ctx) error {
	var req models.ScratchCardSettings
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	settings, err := h.Settings.UpdateScratchCard(req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "scratch card settings updated", settings)
}

func (h *AdminHandlers) GetDailySpinSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.DailySpin()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "daily spin settings fetched", settings)
}

type dailySpinSettingsRequest struct {
	DailySpinLimit int64 `json:"daily_spin_limit"`
}

func (h *AdminHandlers) UpdateDailySpinSettings(c *fiber.Ctx) error {
	var req dailySpinSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	settings, err := h.Settings.UpdateDailySpin(req.DailySpinLimit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "daily spin settings updated", settings)
}

func (h *AdminHandlers) GetReferralSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.Referral()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "referral settings fetched", settings)
}

type referralSettingsRequest struct {
	RewardForNewUser  int64             `json:"reward_for_new_user"`
	RewardForReferrer int64             `json:"reward_for_referrer"`
	RewardType        models.RewardType `json:"reward_type"`
}

func (h *AdminHandlers) UpdateReferralSettings(c *fiber.Ctx) error {
	var req referralSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	settings, err := h.Settings.UpdateReferral(req.RewardForNewUser, req.RewardForReferrer, req.RewardType)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "referral settings updated", settings)
}

func (h *AdminHandlers) GetConversionSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.Conversion()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "conversion settings fetched", settings)
}

type conversionSettingsRequest struct {
	CoinsPerRupee         float64 `json:"coins_per_rupee"`
	MinimumCoinsToConvert int64   `json:"minimum_coins_to_convert"`
}

func (h *AdminHandlers) UpdateConversionSettings(c *fiber.Ctx) error {
	var req conversionSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	settings, err := h.Settings.UpdateConversion(req.CoinsPerRupee, req.MinimumCoinsToConvert)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "conversion settings updated", settings)
}

func (h *AdminHandlers) GetWithdrawalSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.Withdrawal()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "withdrawal threshold fetched", settings)
}

type withdrawalSettingsRequest struct {
	MinimumWithdrawalAmount float64 `json:"minimum_withdrawal_amount"`
}

func (h *AdminHandlers) UpdateWithdrawalSettings(c *fiber.Ctx) error {
	var req withdrawalSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	settings, err := h.Settings.UpdateWithdrawal(req.MinimumWithdrawalAmount)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "withdrawal threshold updated", settings)
}

func (h *AdminHandlers) ListWithdrawals(c *fiber.Ctx) error {
	requests, err := h.Withdrawals.ListAll(models.WithdrawalStatus(c.Query("status")))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "withdrawal requests fetched", requests)
}

type resolveRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *AdminHandlers) ResolveWithdrawal(c *fiber.Ctx) error {
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	resolution, err := h.Withdrawals.Resolve(c.Params("requestId"), models.WithdrawalStatus(req.Status), req.Notes)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "withdrawal request resolved", resolution)
}

func (h *AdminHandlers) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	users, total, err := h.Users.List(page, limit, c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "users fetched", fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *AdminHandlers) UserDetail(c *fiber.Ctx) error {
	detail, err := h.Users.Detail(c.Params("userId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "user fetched", detail)
}

func (h *AdminHandlers) BlockUser(c *fiber.Ctx) error {
	if err := h.Users.SetBlocked(c.Params("userId"), true); err != nil {
		return fail(c, err)
	}
	return ok(c, "user blocked", nil)
}

func (h *AdminHandlers) UnblockUser(c *fiber.Ctx) error {
	if err := h.Users.SetBlocked(c.Params("userId"), false); err != nil {
		return fail(c, err)
	}
	return ok(c, "user unblocked", nil)
}

func (h *AdminHandlers) CreateApp(c *fiber.Ctx) error {
	var input services.AppInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	app, err := h.Apps.Create(input)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "app created", app)
}

func (h *AdminHandlers) ListApps(c *fiber.Ctx) error {
	apps, err := h.Apps.ListAll()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "apps fetched", apps)
}

func (h *AdminHandlers) GetApp(c *fiber.Ctx) error {
	app, err := h.Apps.ByID(c.Params("appId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "app fetched", app)
}

func (h *AdminHandlers) UpdateApp(c *fiber.Ctx) error {
	var input services.AppInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	app, err := h.Apps.Update(c.Params("appId"), input)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "app updated", app)
}

func (h *AdminHandlers) DeleteApp(c *fiber.Ctx) error {
	if err := h.Apps.Delete(c.Params("appId")); err != nil {
		return fail(c, err)
	}
	return ok(c, "app deleted", nil)
}

func (h *AdminHandlers) ListSubmissions(c *fiber.Ctx) error {
	subs, err := h.Apps.AllSubmissions(models.SubmissionStatus(c.Query("status")))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "submissions fetched", subs)
}

func (h *AdminHandlers) ResolveSubmission(c *fiber.Ctx) error {
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, services.Validationf("invalid request body"))
	}
	resolution, err := h.Apps.ResolveSubmission(c.Params("submissionId"), models.SubmissionStatus(req.Status), req.Notes)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "submission resolved", resolution)
}
