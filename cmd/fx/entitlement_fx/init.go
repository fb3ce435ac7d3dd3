package entitlement_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"stagekit/internal/repositories"
	"stagekit/internal/services"
)

var Module = fx.Provide(
	provideEntitlementService,
	provideEntitlementRepo,
	provideLedgerRepo)

func provideEntitlementRepo(db *gorm.DB) repositories.EntitlementRepository {
	return repositories.NewEntitlementRepository(db)
}

func provideLedgerRepo(db *gorm.DB) repositories.LedgerRepository {
	return repositories.NewLedgerRepository(db)
}

func provideEntitlementService(
	entitlements repositories.EntitlementRepository,
	ledger repositories.LedgerRepository,
	payments repositories.PaymentRepository) services.EntitlementServiceInterface {
	return services.NewEntitlementService(entitlements, ledger, payments)
}
