package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"stagekit/internal/models/db_models"
)

type IPlanRepository interface {
	GetActivePlanByCycle(ctx context.Context, cycle db_models.PlanCycle) (*db_models.Plan, error)
	GetAllPlans(ctx context.Context) ([]db_models.Plan, error)
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (p PlanRepository) GetActivePlanByCycle(ctx context.Context, cycle db_models.PlanCycle) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).
		First(&plan, "cycle = ? AND is_active = TRUE", cycle).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p PlanRepository) GetAllPlans(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := p.db.WithContext(ctx).
		Where("is_active = TRUE").
		Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}
