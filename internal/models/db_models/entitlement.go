package db_models

import (
	"github.com/google/uuid"
)

type EntitlementStatus string

const (
	EntStatusTrial    EntitlementStatus = "trial"
	EntStatusActive   EntitlementStatus = "active"
	EntStatusGrace    EntitlementStatus = "grace"
	EntStatusPaused   EntitlementStatus = "paused"
	EntStatusCanceled EntitlementStatus = "canceled"
)

// Entitled is derived from the status alone and is never stored.
func (s EntitlementStatus) Entitled() bool {
	return s == EntStatusTrial || s == EntStatusActive || s == EntStatusGrace
}

type PlanCycle string

const (
	CycleMonthly PlanCycle = "monthly"
	CycleAnnual  PlanCycle = "annual"
)

// Entitlement is the per-account billing aggregate. It is written only by the
// entitlement service; everything else reads it through the status evaluator.
type Entitlement struct {
	BaseModel
	AccountID uuid.UUID `gorm:"uniqueIndex"`

	Status EntitlementStatus `gorm:"type:entitlement_status;index"`

	// Unix seconds. TrialEnd is set once at registration and never reset.
	TrialEnd    *int64
	HasHadTrial bool `gorm:"default:false"`
	GraceEnd    *int64

	Plan        *PlanCycle
	PlanPriceID string

	GatewayCustomerID     string `gorm:"index"`
	GatewaySubscriptionID string `gorm:"index"`

	// True once the one-time onboarding fee has ever been charged.
	FeeApplied bool `gorm:"default:false"`

	// Version guards the conditional write; every applied transition bumps it.
	Version int64 `gorm:"not null;default:0"`

	Account Account `gorm:"foreignKey:AccountID"`
}
