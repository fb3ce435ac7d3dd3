package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stagekit/internal/models/db_models"
	"stagekit/pkg/utils"
)

type EntitlementRepository interface {
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.Entitlement, error)
	FindByGatewayCustomer(ctx context.Context, customerID string) (*db_models.Entitlement, error)
	Insert(ctx context.Context, ent *db_models.Entitlement) error
	// UpdateVersioned persists ent only if the stored row still carries
	// expectedVersion; returns utils.ErrConcurrentUpdate otherwise.
	UpdateVersioned(ctx context.Context, ent *db_models.Entitlement, expectedVersion int64) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

type entitlementRepository struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: db}
}

func (r *entitlementRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.Entitlement, error) {
	var ent db_models.Entitlement
	err := r.db.WithContext(ctx).First(&ent, "account_id = ?", accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ent, nil
}

func (r *entitlementRepository) FindByGatewayCustomer(ctx context.Context, customerID string) (*db_models.Entitlement, error) {
	if customerID == "" {
		return nil, nil
	}

	var ent db_models.Entitlement
	err := r.db.WithContext(ctx).First(&ent, "gateway_customer_id = ?", customerID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ent, nil
}

func (r *entitlementRepository) Insert(ctx context.Context, ent *db_models.Entitlement) error {
	return r.db.WithContext(ctx).Create(ent).Error
}

func (r *entitlementRepository) UpdateVersioned(ctx context.Context, ent *db_models.Entitlement, expectedVersion int64) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Entitlement{}).
		Where("account_id = ? AND version = ?", ent.AccountID, expectedVersion).
		Updates(map[string]interface{}{
			"status":                  ent.Status,
			"trial_end":               ent.TrialEnd,
			"has_had_trial":           ent.HasHadTrial,
			"grace_end":               ent.GraceEnd,
			"plan":                    ent.Plan,
			"plan_price_id":           ent.PlanPriceID,
			"gateway_customer_id":     ent.GatewayCustomerID,
			"gateway_subscription_id": ent.GatewaySubscriptionID,
			"fee_applied":             ent.FeeApplied,
			"version":                 ent.Version,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrConcurrentUpdate
	}
	return nil
}

func (r *entitlementRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("account_id = ?", accountID).
		Delete(&db_models.Entitlement{}).Error
}
