package billing_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"stagekit/internal/repositories"
	"stagekit/internal/services"
)

var Module = fx.Provide(
	provideBillingService,
	provideWebhookService,
	providePaymentGateway,
	providePlanRepo,
	providePaymentRepo)

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepository {
	return repositories.NewPaymentRepository(db)
}

func providePaymentGateway() services.PaymentGateway {
	return services.NewStripeGateway(services.StripeConfig{
		APIKey:        os.Getenv("STRIPE_API_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SuccessURL:    os.Getenv("CHECKOUT_SUCCESS_URL"),
		CancelURL:     os.Getenv("CHECKOUT_CANCEL_URL"),
	})
}

func provideBillingService(
	plans repositories.IPlanRepository,
	payments repositories.PaymentRepository,
	entitlements repositories.EntitlementRepository,
	engine services.EntitlementServiceInterface,
	gateway services.PaymentGateway) services.BillingServiceInterface {
	return services.NewBillingService(plans, payments, entitlements, engine, gateway)
}

func provideWebhookService(
	engine services.EntitlementServiceInterface,
	entitlements repositories.EntitlementRepository) services.WebhookServiceInterface {
	return services.NewWebhookService(os.Getenv("STRIPE_WEBHOOK_SECRET"), engine, entitlements)
}
