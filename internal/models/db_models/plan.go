package db_models

import (
	"gorm.io/datatypes"
)

type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"` // e.g. "monthly", "annual"
	Name        string
	Description *string
	Cycle       PlanCycle `gorm:"type:plan_cycle"`
	PriceMinor  int64     // 999 = $9.99
	Currency    string    `gorm:"size:3"`
	// One-time onboarding fee charged on an account's first paid checkout.
	SetupFeeMinor int64
	IsActive      bool `gorm:"default:true"`

	// Gateway price references (configured in the Stripe dashboard).
	GatewayPriceID    string
	GatewayFeePriceID string

	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
