package controllers_fx

import (
	"go.uber.org/fx"
	"stagekit/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewBillingController),
	fx.Provide(controllers.NewEntitlementController),
	fx.Provide(controllers.NewWebhookController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewRequestController))
