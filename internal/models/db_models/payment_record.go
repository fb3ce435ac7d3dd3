package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentKind string

const (
	PaymentKindSubscription PaymentKind = "subscription"
	PaymentKindFee          PaymentKind = "fee"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentRecord is the financial audit trail. A row is created pending when a
// checkout session starts and updated (never replaced) once the gateway
// reports its outcome.
type PaymentRecord struct {
	BaseModel
	AccountID         uuid.UUID `gorm:"index"`
	CheckoutSessionID string    `gorm:"index"`

	AmountMinor int64  // 999 = $9.99
	Currency    string `gorm:"size:3"`

	Kind   PaymentKind   `gorm:"index"`
	Status PaymentStatus `gorm:"index"`

	Plan PlanCycle

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account `gorm:"foreignKey:AccountID"`
}
