package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"stagekit/internal/models/db_models"
	"stagekit/internal/models/request_models"
	"stagekit/internal/models/response_models"
	"stagekit/internal/repositories"
	"stagekit/pkg/utils"
)

type CatalogServiceInterface interface {
	CreateSong(ctx context.Context, accountID uuid.UUID, req request_models.UpsertSongRequest) (*response_models.SongResponse, error)
	UpdateSong(ctx context.Context, accountID, songID uuid.UUID, req request_models.UpsertSongRequest) (*response_models.SongResponse, error)
	DeleteSong(ctx context.Context, accountID, songID uuid.UUID) error
	ListSongs(ctx context.Context, accountID uuid.UUID) ([]response_models.SongResponse, error)
	// ListAudienceSongs returns only active songs; it backs the public page.
	ListAudienceSongs(ctx context.Context, accountID uuid.UUID) ([]response_models.SongResponse, error)

	CreatePlaylist(ctx context.Context, accountID uuid.UUID, req request_models.UpsertPlaylistRequest) (*response_models.PlaylistResponse, error)
	ListPlaylists(ctx context.Context, accountID uuid.UUID) ([]response_models.PlaylistResponse, error)
	DeletePlaylist(ctx context.Context, accountID, playlistID uuid.UUID) error
}

type catalogService struct {
	songs     repositories.SongRepository
	playlists repositories.PlaylistRepository
}

func NewCatalogService(songs repositories.SongRepository, playlists repositories.PlaylistRepository) CatalogServiceInterface {
	return &catalogService{songs: songs, playlists: playlists}
}

func (c *catalogService) CreateSong(ctx context.Context, accountID uuid.UUID, req request_models.UpsertSongRequest) (*response_models.SongResponse, error) {
	song := &db_models.Song{
		AccountID: accountID,
		Title:     req.Title,
		Artist:    req.Artist,
		Tags:      jsonRaw(req.Tags),
		Active:    true,
	}
	if req.Active != nil {
		song.Active = *req.Active
	}

	if err := c.songs.Insert(ctx, song); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return songResponse(song), nil
}

func (c *catalogService) UpdateSong(ctx context.Context, accountID, songID uuid.UUID, req request_models.UpsertSongRequest) (*response_models.SongResponse, error) {
	song, err := c.songs.FindById(ctx, accountID, songID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if song == nil {
		return nil, utils.RecordNotFound
	}

	song.Title = req.Title
	song.Artist = req.Artist
	song.Tags = jsonRaw(req.Tags)
	if req.Active != nil {
		song.Active = *req.Active
	}

	if err := c.songs.Update(ctx, song); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return songResponse(song), nil
}

func (c *catalogService) DeleteSong(ctx context.Context, accountID, songID uuid.UUID) error {
	if err := c.songs.DeleteById(ctx, accountID, songID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *catalogService) ListSongs(ctx context.Context, accountID uuid.UUID) ([]response_models.SongResponse, error) {
	songs, err := c.songs.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return songResponses(songs), nil
}

func (c *catalogService) ListAudienceSongs(ctx context.Context, accountID uuid.UUID) ([]response_models.SongResponse, error) {
	songs, err := c.songs.ListActiveByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return songResponses(songs), nil
}

func (c *catalogService) CreatePlaylist(ctx context.Context, accountID uuid.UUID, req request_models.UpsertPlaylistRequest) (*response_models.PlaylistResponse, error) {
	playlist := &db_models.Playlist{
		AccountID: accountID,
		Name:      req.Name,
		SongIDs:   jsonRaw(req.SongIDs),
	}

	if err := c.playlists.Insert(ctx, playlist); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return playlistResponse(playlist), nil
}

func (c *catalogService) ListPlaylists(ctx context.Context, accountID uuid.UUID) ([]response_models.PlaylistResponse, error) {
	playlists, err := c.playlists.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		result = append(result, *playlistResponse(&playlists[i]))
	}
	return result, nil
}

func (c *catalogService) DeletePlaylist(ctx context.Context, accountID, playlistID uuid.UUID) error {
	if err := c.playlists.DeleteById(ctx, accountID, playlistID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func songResponse(song *db_models.Song) *response_models.SongResponse {
	var tags []string
	_ = json.Unmarshal(song.Tags, &tags)

	return &response_models.SongResponse{
		ID:     song.ID,
		Title:  song.Title,
		Artist: song.Artist,
		Tags:   tags,
		Active: song.Active,
	}
}

func songResponses(songs []db_models.Song) []response_models.SongResponse {
	result := make([]response_models.SongResponse, 0, len(songs))
	for i := range songs {
		result = append(result, *songResponse(&songs[i]))
	}
	return result
}

func playlistResponse(playlist *db_models.Playlist) *response_models.PlaylistResponse {
	var songIDs []string
	_ = json.Unmarshal(playlist.SongIDs, &songIDs)

	return &response_models.PlaylistResponse{
		ID:      playlist.ID,
		Name:    playlist.Name,
		SongIDs: songIDs,
	}
}

func jsonRaw(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("[]")
	}
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
