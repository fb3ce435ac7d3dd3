package requests_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"stagekit/internal/repositories"
	"stagekit/internal/services"
)

var Module = fx.Provide(
	provideRequestService, provideRequestRepo)

func provideRequestRepo(db *gorm.DB) repositories.RequestRepository {
	return repositories.NewRequestRepository(db)
}

func provideRequestService(
	requests repositories.RequestRepository,
	songs repositories.SongRepository,
	accounts repositories.AccountRepository,
	mail services.IMailService) services.RequestServiceInterface {
	return services.NewRequestService(requests, songs, accounts, mail)
}
