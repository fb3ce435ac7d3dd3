package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stagekit/internal/models/db_models"
)

type RequestRepository interface {
	Insert(ctx context.Context, request *db_models.SongRequest) error
	FindById(ctx context.Context, accountID, id uuid.UUID) (*db_models.SongRequest, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.SongRequest, error)
	UpdateStatus(ctx context.Context, accountID, id uuid.UUID, status db_models.RequestStatus) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Insert(ctx context.Context, request *db_models.SongRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) FindById(ctx context.Context, accountID, id uuid.UUID) (*db_models.SongRequest, error) {
	var request db_models.SongRequest
	err := r.db.WithContext(ctx).
		First(&request, "id = ? AND account_id = ?", id, accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.SongRequest, error) {
	var requests []db_models.SongRequest
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&requests).Error

	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, accountID, id uuid.UUID, status db_models.RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.SongRequest{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Update("status", status).Error
}

func (r *requestRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("account_id = ?", accountID).
		Delete(&db_models.SongRequest{}).Error
}
