package bootstrap

import (
	"strings"
	"time"

	"eli5-bot/internal/config"
	"eli5-bot/internal/controller"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/internal/pkg/serverutils"
	"eli5-bot/internal/repository/memory"
	"eli5-bot/internal/repository/unitofwork"
	"eli5-bot/internal/service"
	"eli5-bot/pkg/events"
	"eli5-bot/pkg/llm"
	"eli5-bot/pkg/llm/factory"
	pktNats "eli5-bot/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	ChatController     controller.IChatController
	GenerateController controller.IGenerateController

	// Middleware
	IdentityMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ActivityConsumer service.IActivityConsumer

	Bus    events.Bus
	Logger logger.ILogger
	audit  logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.ActivityLogPath)

	// 2. Event Bus
	bus := newEventBus(cfg, sysLogger)

	// 3. LLM Provider (optional; /api/generate reports the gap)
	llmProvider := newLLMProvider(cfg, sysLogger)

	// 4. Services
	authService := service.NewAuthService(uowFactory, bus, sysLogger)
	chatService := service.NewChatService(uowFactory, bus, sysLogger)
	generateService := service.NewGenerateService(llmProvider, bus, sysLogger)
	activityConsumer := service.NewActivityConsumer(bus, auditLogger, sysLogger)

	identityCache := memory.NewIdentityCache(time.Duration(cfg.App.IdentityCacheTTL) * time.Second)

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		ChatController:     controller.NewChatController(chatService),
		GenerateController: controller.NewGenerateController(generateService),
		IdentityMiddleware: serverutils.IdentityMiddleware(authService, identityCache, sysLogger),
		ActivityConsumer:   activityConsumer,
		Bus:                bus,
		Logger:             sysLogger,
		audit:              auditLogger,
	}
}

// Close releases the bus and flushes both loggers.
func (c *Container) Close() {
	if err := c.Bus.Close(); err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	_ = c.audit.Sync()
	_ = c.Logger.Sync()
}

func newEventBus(cfg *config.Config, log logger.ILogger) events.Bus {
	if cfg.App.NatsURL == "" {
		log.Info("BOOTSTRAP", "NATS_URL not set, using in-process event bus", nil)
		return events.NewLocalBus()
	}
	natsBus, err := pktNats.NewBus(cfg.App.NatsURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to NATS, using in-process event bus", map[string]interface{}{
			"url":   cfg.App.NatsURL,
			"error": err.Error(),
		})
		return events.NewLocalBus()
	}
	log.Info("BOOTSTRAP", "Connected to NATS JetStream", map[string]interface{}{"url": cfg.App.NatsURL})
	return natsBus
}

func newLLMProvider(cfg *config.Config, log logger.ILogger) llm.LLMProvider {
	if cfg.Keys.LLM == "" && !factory.KeylessProviders[strings.ToLower(cfg.Ai.LLMProvider)] {
		log.Warn("BOOTSTRAP", "No LLM key configured; /api/generate will fail", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
		})
		return nil
	}
	provider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.LLMBaseURL, cfg.Keys.LLM)
	if err != nil {
		log.Error("BOOTSTRAP", "Failed to initialize LLM provider", map[string]interface{}{"error": err})
		return nil
	}
	log.Info("BOOTSTRAP", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})
	return provider
}
