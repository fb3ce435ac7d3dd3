package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stagekit/internal/models/db_models"
)

type PaymentRepository interface {
	Insert(ctx context.Context, record *db_models.PaymentRecord) error
	FindBySession(ctx context.Context, accountID uuid.UUID, sessionID string) (*db_models.PaymentRecord, error)
	// UpdateOutcome resolves the pending subscription record for a session.
	UpdateOutcome(ctx context.Context, sessionID string, status db_models.PaymentStatus) error
	SetSessionID(ctx context.Context, recordID uuid.UUID, sessionID string) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Insert(ctx context.Context, record *db_models.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *paymentRepository) FindBySession(ctx context.Context, accountID uuid.UUID, sessionID string) (*db_models.PaymentRecord, error) {
	var record db_models.PaymentRecord
	err := r.db.WithContext(ctx).
		First(&record, "account_id = ? AND checkout_session_id = ? AND kind = ?",
			accountID, sessionID, db_models.PaymentKindSubscription).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

func (r *paymentRepository) UpdateOutcome(ctx context.Context, sessionID string, status db_models.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.PaymentRecord{}).
		Where("checkout_session_id = ? AND kind = ?", sessionID, db_models.PaymentKindSubscription).
		Update("status", status).Error
}

func (r *paymentRepository) SetSessionID(ctx context.Context, recordID uuid.UUID, sessionID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.PaymentRecord{}).
		Where("id = ?", recordID).
		Update("checkout_session_id", sessionID).Error
}

func (r *paymentRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("account_id = ?", accountID).
		Delete(&db_models.PaymentRecord{}).Error
}
