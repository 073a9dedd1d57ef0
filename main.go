package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"coin-rewards-system/handlers"
	"coin-rewards-system/models"
	"coin-rewards-system/services"
	"coin-rewards-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, screenshots only
	})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Device-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if os.Getenv("AWS_S3_BUCKET") != "" {
		if err := utils.InitS3(); err != nil {
			log.Fatal("failed to initialize S3 client:", err)
		}
	} else {
		log.Println("⚠️  AWS_S3_BUCKET not set, screenshots fall back to local uploads/")
	}

	// TranslateError lets unique violations surface as gorm.ErrDuplicatedKey,
	// which the claim and withdrawal paths depend on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	ledger := services.NewLedgerService(db)
	gate := services.NewClaimGate(db)
	settings := services.NewSettingsService(db)
	referral := services.NewReferralService(db, ledger, settings)
	users := services.NewUserService(db, ledger, referral)
	captcha := services.NewCaptchaService(db, ledger, gate, settings)
	dailyBonus := services.NewDailyBonusService(db, ledger, gate, settings)
	scratch := services.NewScratchCardService(db, ledger, gate, settings)
	spin := services.NewDailySpinService(db, gate, settings)
	conversion := services.NewConversionService(db, ledger, settings)
	withdrawals := services.NewWithdrawalService(db, ledger, settings)
	apps := services.NewAppService(db, ledger)

	services.NewScheduler(settings, withdrawals).Start()

	handlers.SetupUserRoutes(app, &handlers.UserHandlers{
		Users:       users,
		Ledger:      ledger,
		Referral:    referral,
		Captcha:     captcha,
		DailyBonus:  dailyBonus,
		Scratch:     scratch,
		Spin:        spin,
		Conversion:  conversion,
		Withdrawals: withdrawals,
		Apps:        apps,
	})
	handlers.SetupAdminRoutes(app, &handlers.AdminHandlers{
		Users:       users,
		Settings:    settings,
		Withdrawals: withdrawals,
		Apps:        apps,
	})

	app.Static("/uploads", utils.UploadRoot())

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
