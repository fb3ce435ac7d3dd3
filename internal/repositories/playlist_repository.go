package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stagekit/internal/models/db_models"
)

type PlaylistRepository interface {
	Insert(ctx context.Context, playlist *db_models.Playlist) error
	Update(ctx context.Context, playlist *db_models.Playlist) error
	FindById(ctx context.Context, accountID, id uuid.UUID) (*db_models.Playlist, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Playlist, error)
	DeleteById(ctx context.Context, accountID, id uuid.UUID) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (p *playlistRepository) Insert(ctx context.Context, playlist *db_models.Playlist) error {
	return p.db.WithContext(ctx).Create(playlist).Error
}

func (p *playlistRepository) Update(ctx context.Context, playlist *db_models.Playlist) error {
	return p.db.WithContext(ctx).Save(playlist).Error
}

func (p *playlistRepository) FindById(ctx context.Context, accountID, id uuid.UUID) (*db_models.Playlist, error) {
	var playlist db_models.Playlist
	err := p.db.WithContext(ctx).
		First(&playlist, "id = ? AND account_id = ?", id, accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &playlist, nil
}

func (p *playlistRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Playlist, error) {
	var playlists []db_models.Playlist
	err := p.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("name ASC").
		Find(&playlists).Error

	if err != nil {
		return nil, err
	}
	return playlists, nil
}

func (p *playlistRepository) DeleteById(ctx context.Context, accountID, id uuid.UUID) error {
	return p.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&db_models.Playlist{}).Error
}

func (p *playlistRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	return p.db.WithContext(ctx).Unscoped().
		Where("account_id = ?", accountID).
		Delete(&db_models.Playlist{}).Error
}
