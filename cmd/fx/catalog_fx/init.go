package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"stagekit/internal/repositories"
	"stagekit/internal/services"
)

var Module = fx.Provide(
	provideCatalogService, provideSongRepo, providePlaylistRepo)

func provideSongRepo(db *gorm.DB) repositories.SongRepository {
	return repositories.NewSongRepository(db)
}

func providePlaylistRepo(db *gorm.DB) repositories.PlaylistRepository {
	return repositories.NewPlaylistRepository(db)
}

func provideCatalogService(songs repositories.SongRepository, playlists repositories.PlaylistRepository) services.CatalogServiceInterface {
	return services.NewCatalogService(songs, playlists)
}
