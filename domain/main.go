package domain

import (
	"github.com/akeren/macro-app-api/config"
	"github.com/akeren/macro-app-api/domain/auth"
	"github.com/akeren/macro-app-api/domain/chat"
	"github.com/akeren/macro-app-api/domain/monitoring"
	"github.com/akeren/macro-app-api/domain/recipes"
	"github.com/akeren/macro-app-api/domain/shopping"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	rs := appConfig.RouterService
	clients := appConfig.Clients

	monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.CounterStore).Mount(rs)

	rs.MountController(auth.NewAuthController(appConfig.DB, appConfig.Logger, clients.OTP, clients.Tokens))
	rs.MountController(recipes.NewRecipesController(appConfig.DB, appConfig.Logger))
	rs.MountController(chat.NewChatController(appConfig.DB, appConfig.Logger, clients.Assistant, clients.Tokens))
	rs.MountController(shopping.NewShoppingController(appConfig.Logger, clients.Instacart, clients.Tokens))
}
