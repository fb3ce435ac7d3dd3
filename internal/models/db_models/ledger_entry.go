package db_models

import (
	"github.com/google/uuid"
)

type LedgerCause string

const (
	CauseRegister            LedgerCause = "register"
	CauseCheckoutCompleted   LedgerCause = "checkout_completed"
	CausePaymentFailed       LedgerCause = "payment_failed"
	CausePaymentSucceeded    LedgerCause = "payment_succeeded"
	CauseUserCancel          LedgerCause = "user_cancel"
	CauseSubscriptionDeleted LedgerCause = "gateway_subscription_deleted"
	CauseLazyExpiry          LedgerCause = "lazy_expiry"
	CauseIgnored             LedgerCause = "ignored"
)

// LedgerEntry is the append-only record of every processed lifecycle event.
// EventID is the dedup key: the provider event id for webhook-sourced entries,
// a generated id for user-issued commands. Entries are never mutated; only a
// full account erasure removes them.
type LedgerEntry struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index;uniqueIndex:idx_ledger_account_event"`
	EventID   string    `gorm:"uniqueIndex:idx_ledger_account_event"`

	Cause           LedgerCause
	OccurredAt      int64 // event-reported time, unix seconds
	ResultingStatus EntitlementStatus
	RecordedAt      int64 // receipt time, unix seconds

	// Transition marks entries that actually changed the stored status, as
	// opposed to deduplicated or irrelevant events logged as no-ops.
	Transition bool `gorm:"index"`
}
