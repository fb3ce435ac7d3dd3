package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"stagekit/internal/repositories"
	"stagekit/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideEraserService)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, engine services.EntitlementServiceInterface) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, engine)
}

func provideEraserService(
	accounts repositories.AccountRepository,
	entitlements repositories.EntitlementRepository,
	ledger repositories.LedgerRepository,
	payments repositories.PaymentRepository,
	songs repositories.SongRepository,
	requests repositories.RequestRepository,
	playlists repositories.PlaylistRepository) services.EraserServiceInterface {
	return services.NewEraserService(accounts, entitlements, ledger, payments, songs, requests, playlists)
}
