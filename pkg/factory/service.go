package factory

import (
	"fmt"
	"time"

	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/assistant"
	"github.com/akeren/macro-app-api/pkg/constants"
	"github.com/akeren/macro-app-api/pkg/instacart"
	"github.com/akeren/macro-app-api/pkg/otp"
	"github.com/akeren/macro-app-api/pkg/ratelimit"
	"github.com/akeren/macro-app-api/pkg/token"
)

type RateLimiterFactory interface {
	CreateRateLimiter() ratelimit.RateLimiter
}

type DefaultRateLimiterFactory struct {
	config *ratelimit.RateLimitConfig
}

func NewDefaultRateLimiterFactory(store ratelimit.CounterStore, classes map[string]ratelimit.Rule, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	return &DefaultRateLimiterFactory{
		config: &ratelimit.RateLimitConfig{
			Store:   store,
			Classes: classes,
			Logger:  logger,
		},
	}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter() ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(f.config)
}

// ClientSettings carries credentials and tuning for every outbound client.
type ClientSettings struct {
	JWTSecret string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioServiceSID string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	InstacartAPIKey  string
	InstacartStoreID string
	InstacartBaseURL string

	OutboundTimeout time.Duration

	// Logger receives circuit transitions and retry attempts. Optional.
	Logger *log.Logger
}

type FactoryContainer struct {
	RateLimiterFactory RateLimiterFactory

	Tokens    *token.Service
	OTP       otp.Provider
	Assistant assistant.Completer
	Instacart instacart.ShoppingListCreator
}

// NewFactoryContainer builds the token service and the provider clients. Any missing
// credential fails the whole container.
func NewFactoryContainer(settings ClientSettings, rateLimiterFactory RateLimiterFactory) (*FactoryContainer, error) {
	timeout := settings.OutboundTimeout
	if timeout <= 0 {
		timeout = constants.DefaultOutboundTimeout
	}

	tokens, err := token.New(settings.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	otpProvider, err := otp.NewTwilioVerify(otp.Config{
		AccountSID: settings.TwilioAccountSID,
		AuthToken:  settings.TwilioAuthToken,
		ServiceSID: settings.TwilioServiceSID,
		Timeout:    timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("otp provider: %w", err)
	}

	model := settings.OpenAIModel
	if model == "" {
		model = constants.DefaultChatModel
	}
	acfg := assistant.Config{
		APIKey:  settings.OpenAIAPIKey,
		Model:   model,
		BaseURL: settings.OpenAIBaseURL,
		Timeout: timeout,
	}
	icfg := instacart.Config{
		APIKey:  settings.InstacartAPIKey,
		StoreID: settings.InstacartStoreID,
		BaseURL: settings.InstacartBaseURL,
		Timeout: timeout,
	}
	if settings.Logger != nil {
		acfg.Logger = settings.Logger
		icfg.Logger = settings.Logger
	}

	completer, err := assistant.NewOpenAIClient(acfg)
	if err != nil {
		return nil, fmt.Errorf("chat assistant: %w", err)
	}

	grocery, err := instacart.NewClient(icfg)
	if err != nil {
		return nil, fmt.Errorf("instacart client: %w", err)
	}

	return &FactoryContainer{
		RateLimiterFactory: rateLimiterFactory,
		Tokens:             tokens,
		OTP:                otpProvider,
		Assistant:          completer,
		Instacart:          grocery,
	}, nil
}
