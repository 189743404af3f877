package internal

import (
	"net/http"
	"smsgate/internal/controllers"
	"smsgate/internal/providers"
)

func InitRoutes(statusController *controllers.StatusController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/status", http.HandlerFunc(statusController.GetStatus))
	return routers
}
