package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stagekit/internal/models/db_models"
)

type SongRepository interface {
	Insert(ctx context.Context, song *db_models.Song) error
	Update(ctx context.Context, song *db_models.Song) error
	FindById(ctx context.Context, accountID, id uuid.UUID) (*db_models.Song, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Song, error)
	ListActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Song, error)
	DeleteById(ctx context.Context, accountID, id uuid.UUID) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

type songRepository struct {
	db *gorm.DB
}

func NewSongRepository(db *gorm.DB) SongRepository {
	return &songRepository{db: db}
}

func (s *songRepository) Insert(ctx context.Context, song *db_models.Song) error {
	return s.db.WithContext(ctx).Create(song).Error
}

func (s *songRepository) Update(ctx context.Context, song *db_models.Song) error {
	return s.db.WithContext(ctx).Save(song).Error
}

func (s *songRepository) FindById(ctx context.Context, accountID, id uuid.UUID) (*db_models.Song, error) {
	var song db_models.Song
	err := s.db.WithContext(ctx).
		First(&song, "id = ? AND account_id = ?", id, accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &song, nil
}

func (s *songRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Song, error) {
	var songs []db_models.Song
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("title ASC").
		Find(&songs).Error

	if err != nil {
		return nil, err
	}
	return songs, nil
}

func (s *songRepository) ListActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Song, error) {
	var songs []db_models.Song
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND active = TRUE", accountID).
		Order("title ASC").
		Find(&songs).Error

	if err != nil {
		return nil, err
	}
	return songs, nil
}

func (s *songRepository) DeleteById(ctx context.Context, accountID, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&db_models.Song{}).Error
}

func (s *songRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("account_id = ?", accountID).
		Delete(&db_models.Song{}).Error
}
