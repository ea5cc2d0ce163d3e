package main

import (
	"log"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/api"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/bot"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/config"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/database"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/middleware"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/models"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/repository"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/services"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func init() {
	// Local development convenience; in production the environment is real.
	godotenv.Load()
}

func main() {
	config.LoadConfig()
	cfg := &config.AppConfig

	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	runMigrations(db)

	quotaRepo := repository.NewQuotaRepository(db)
	chatRepo := repository.NewChatRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	classifier := services.NewClassifierService(cfg.Vocabulary)
	responder := services.NewResponderService(cfg.Vocabulary)
	quotaService := services.NewQuotaService(quotaRepo, cfg.Bot.DailyLimit)
	dispatcher := services.NewDispatcherService(
		services.NewProvider(cfg.Providers.Serious, cfg.Prompts.Empathetic),
		services.NewProvider(cfg.Providers.Lightweight, cfg.Prompts.System),
	)
	log.Println("INFO: [Main] Services initialized.")

	botAPI, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to connect to Telegram: %v", err)
	}
	log.Printf("INFO: [Main] Authorized on Telegram as @%s.", botAPI.Self.UserName)

	subscription := services.NewSubscriptionService(botAPI, cfg.Bot.Channel)
	handler := bot.NewHandler(
		botAPI, subscription, classifier, responder, quotaService, dispatcher,
		chatRepo, cfg.Bot.Channel,
	)

	registerWebhook(botAPI, cfg)

	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	api.RegisterRoutes(r, api.NewWebhookHandler(handler), cfg.Bot.Token)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + cfg.Server.Port
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.DailyQuota{},
		&models.ChatLog{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

// registerWebhook points Telegram at this instance. Without a public base URL
// the bot can still serve health checks, but receives no updates.
func registerWebhook(botAPI *tgbotapi.BotAPI, cfg *config.Config) {
	if cfg.Server.WebhookBaseURL == "" {
		log.Println("WARN: [Main] WEBHOOK_BASE_URL is not set, skipping webhook registration.")
		return
	}

	webhookURL := cfg.Server.WebhookBaseURL + "/webhook/" + cfg.Bot.Token
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to build webhook config: %v", err)
	}
	if _, err := botAPI.Request(wh); err != nil {
		log.Fatalf("FATAL: [Main] Failed to register webhook with Telegram: %v", err)
	}
	log.Println("INFO: [Main] Telegram webhook registered.")
}
