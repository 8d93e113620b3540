package config

import (
	"context"
	"time"

	"github.com/akeren/macro-app-api/config/router"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/internal/models"
	"github.com/akeren/macro-app-api/pkg/constants"
	"github.com/akeren/macro-app-api/pkg/factory"
	"github.com/akeren/macro-app-api/pkg/ratelimit"
	"github.com/akeren/macro-app-api/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	CounterStore    ratelimit.CounterStore
	Clients         *factory.FactoryContainer
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RouteClasses      map[string]ratelimit.Rule
	TrustForwardedFor bool
	RequestTimeout    time.Duration
	OutboundTimeout   time.Duration
	OpenAIModel       string
	OpenAIBaseURL     string
	InstacartBaseURL  string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RouteClasses:      RouteClassesFromEnv(),
		TrustForwardedFor: utils.GetEnvBool("RATE_LIMIT_TRUST_FORWARDED", true),
		RequestTimeout:    utils.GetEnvDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		OutboundTimeout:   utils.GetEnvDuration("OUTBOUND_TIMEOUT", constants.DefaultOutboundTimeout),
		OpenAIModel:       utils.GetEnvTrimmedOrDefault("OPENAI_MODEL", constants.DefaultChatModel),
		OpenAIBaseURL:     utils.GetEnvTrimmed("OPENAI_BASE_URL"),
		InstacartBaseURL:  utils.GetEnvTrimmedOrDefault("INSTACART_API_URL", constants.DefaultInstacartAPIURL),
	}
}

// RouteClassesFromEnv returns the fixed class budgets. RATE_LIMIT_REQUESTS and
// RATE_LIMIT_WINDOW only tune the default class.
func RouteClassesFromEnv() map[string]ratelimit.Rule {
	classes := ratelimit.DefaultRouteClasses()

	rule := classes[ratelimit.ClassDefault]
	if n := utils.GetEnvInt("RATE_LIMIT_REQUESTS", rule.MaxRequests); n > 0 {
		rule.MaxRequests = n
	}
	if w := utils.GetEnvDuration("RATE_LIMIT_WINDOW", rule.Window); w >= time.Second {
		rule.Window = w
	}
	classes[ratelimit.ClassDefault] = rule

	return classes
}

func (ac *AppConfig) clientSettings(secrets Secrets, logger *log.Logger) factory.ClientSettings {
	return factory.ClientSettings{
		Logger:           logger,
		JWTSecret:        secrets.JWTSecret,
		TwilioAccountSID: secrets.TwilioAccountSID,
		TwilioAuthToken:  secrets.TwilioAuthToken,
		TwilioServiceSID: secrets.TwilioServiceSID,
		OpenAIAPIKey:     secrets.OpenAIAPIKey,
		OpenAIModel:      ac.OpenAIModel,
		OpenAIBaseURL:    ac.OpenAIBaseURL,
		InstacartAPIKey:  secrets.InstacartAPIKey,
		InstacartStoreID: secrets.InstacartStoreID,
		InstacartBaseURL: ac.InstacartBaseURL,
		OutboundTimeout:  ac.OutboundTimeout,
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.CounterStore != nil {
		_ = CloseCounterStore(ac.CounterStore, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

// LoadApplicationConfiguration validates the environment and connects every dependency.
// A *ConfigError is returned when required variables are missing.
func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	secrets, err := LoadSecrets()
	if err != nil {
		logger.Error("Missing required configuration", "error", err)
		return nil, err
	}

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingShutdown, err := SetupTracing(context.Background(), logger, utils.TracingSettingsFromEnv())
	if err != nil {
		return nil, err
	}

	db, err := NewDatabase(logger, secrets, nil)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			return nil, err
		}
	}

	appConfig := NewAppConfig()

	store, err := NewCounterStoreOrMemory(logger, secrets)
	if err != nil {
		CloseDatabase(db, logger)
		return nil, err
	}

	clients, err := factory.NewFactoryContainer(
		appConfig.clientSettings(secrets, logger),
		factory.NewDefaultRateLimiterFactory(store, appConfig.RouteClasses, logger),
	)
	if err != nil {
		logger.Error("Failed to build provider clients", "error", err)
		CloseDatabase(db, logger)
		_ = CloseCounterStore(store, logger)
		return nil, err
	}

	routerService := router.CreateRouterService(logger, &router.RouterConfig{
		RateLimiter:       clients.RateLimiterFactory.CreateRateLimiter(),
		RouteClasses:      appConfig.RouteClasses,
		TrustForwardedFor: appConfig.TrustForwardedFor,
		RequestTimeout:    appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully")

	return &ApplicationConfig{
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		CounterStore:    store,
		Clients:         clients,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
