package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stagekit/internal/models/db_models"
)

type LedgerRepository interface {
	Exists(ctx context.Context, accountID uuid.UUID, eventID string) (bool, error)
	// LatestTransition returns the newest entry that actually changed the
	// stored status, ordered by event time (not receipt time).
	LatestTransition(ctx context.Context, accountID uuid.UUID) (*db_models.LedgerEntry, error)
	Append(ctx context.Context, entry *db_models.LedgerEntry) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.LedgerEntry, error)
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Exists(ctx context.Context, accountID uuid.UUID, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.LedgerEntry{}).
		Where("account_id = ? AND event_id = ?", accountID, eventID).
		Count(&count).Error

	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ledgerRepository) LatestTransition(ctx context.Context, accountID uuid.UUID) (*db_models.LedgerEntry, error) {
	var entry db_models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND transition = TRUE", accountID).
		Order("occurred_at DESC, recorded_at DESC").
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

func (r *ledgerRepository) Append(ctx context.Context, entry *db_models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.LedgerEntry, error) {
	var entries []db_models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("recorded_at ASC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ledgerRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("account_id = ?", accountID).
		Delete(&db_models.LedgerEntry{}).Error
}
