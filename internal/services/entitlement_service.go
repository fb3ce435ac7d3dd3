package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"stagekit/internal/models/db_models"
	"stagekit/internal/models/response_models"
	"stagekit/internal/repositories"
	"stagekit/pkg/utils"
)

const (
	TrialPeriod = 14 * 24 * time.Hour
	GracePeriod = 7 * 24 * time.Hour
)

type CommandKind string

const (
	CmdRegister                   CommandKind = "register"
	CmdCheckoutCompleted          CommandKind = "checkout_completed"
	CmdPaymentFailed              CommandKind = "payment_failed"
	CmdPaymentSucceeded           CommandKind = "payment_succeeded"
	CmdUserCancel                 CommandKind = "user_cancel"
	CmdGatewaySubscriptionDeleted CommandKind = "gateway_subscription_deleted"
)

// Command is one requested lifecycle transition. EventID doubles as the
// idempotency key: the provider event id for gateway-sourced commands, a
// generated id for user-issued ones. OccurredAt is the event-reported time,
// which decides ordering; receipt time never does.
type Command struct {
	Kind       CommandKind
	EventID    string
	OccurredAt int64

	// Checkout payload.
	Plan                  db_models.PlanCycle
	PlanPriceID           string
	GatewayCustomerID     string
	GatewaySubscriptionID string
	CheckoutSessionID     string

	// FeeCharged is set when the gateway session carried the one-time
	// onboarding fee line item.
	FeeCharged    bool
	FeeMinor      int64
	AmountMinor   int64
	Currency      string
}

var commandCauses = map[CommandKind]db_models.LedgerCause{
	CmdRegister:                   db_models.CauseRegister,
	CmdCheckoutCompleted:          db_models.CauseCheckoutCompleted,
	CmdPaymentFailed:              db_models.CausePaymentFailed,
	CmdPaymentSucceeded:           db_models.CausePaymentSucceeded,
	CmdUserCancel:                 db_models.CauseUserCancel,
	CmdGatewaySubscriptionDeleted: db_models.CauseSubscriptionDeleted,
}

// Evaluate derives the effective entitlement from a stored record and the
// current time. Pure function: trial and grace expiry are computed here, not
// persisted, so an expired account reads as paused before any write happens.
func Evaluate(ent *db_models.Entitlement, now time.Time) response_models.EntitlementSnapshot {
	status := effectiveStatus(ent, now.Unix())

	snap := response_models.EntitlementSnapshot{
		Entitled:      status.Entitled(),
		Status:        string(status),
		CanReactivate: status == db_models.EntStatusCanceled || status == db_models.EntStatusPaused,
	}

	switch status {
	case db_models.EntStatusTrial:
		if ent.TrialEnd != nil {
			d := utils.DaysUntil(*ent.TrialEnd, now)
			snap.DaysRemaining = &d
		}
	case db_models.EntStatusGrace:
		if ent.GraceEnd != nil {
			d := utils.DaysUntil(*ent.GraceEnd, now)
			snap.DaysRemaining = &d
		}
	}

	return snap
}

// effectiveStatus folds pending lazy expiry into the stored status as of the
// given instant (unix seconds).
func effectiveStatus(ent *db_models.Entitlement, at int64) db_models.EntitlementStatus {
	switch ent.Status {
	case db_models.EntStatusTrial:
		if ent.TrialEnd != nil && at >= *ent.TrialEnd {
			return db_models.EntStatusPaused
		}
	case db_models.EntStatusGrace:
		if ent.GraceEnd != nil && at >= *ent.GraceEnd {
			return db_models.EntStatusPaused
		}
	}
	return ent.Status
}

type EntitlementServiceInterface interface {
	// Apply runs one command through the transition engine. The bool reports
	// whether the command changed state; replays and irrelevant events return
	// false with no error so ingestion can always acknowledge.
	Apply(ctx context.Context, accountID uuid.UUID, cmd Command) (*db_models.Entitlement, bool, error)
	Status(ctx context.Context, accountID uuid.UUID) (*response_models.EntitlementStatusResponse, error)
	CheckAccess(ctx context.Context, accountID uuid.UUID) (*response_models.EntitlementSnapshot, error)
}

type EntitlementService struct {
	entitlements repositories.EntitlementRepository
	ledger       repositories.LedgerRepository
	payments     repositories.PaymentRepository

	now func() time.Time
}

func NewEntitlementService(
	entitlements repositories.EntitlementRepository,
	ledger repositories.LedgerRepository,
	payments repositories.PaymentRepository) *EntitlementService {
	return &EntitlementService{
		entitlements: entitlements,
		ledger:       ledger,
		payments:     payments,
		now:          time.Now,
	}
}

var _ EntitlementServiceInterface = (*EntitlementService)(nil)

func (s *EntitlementService) Status(ctx context.Context, accountID uuid.UUID) (*response_models.EntitlementStatusResponse, error) {
	ent, err := s.entitlements.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if ent == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := &response_models.EntitlementStatusResponse{
		EntitlementSnapshot: Evaluate(ent, s.now()),
		TrialEnd:            ent.TrialEnd,
		GraceEnd:            ent.GraceEnd,
	}
	if ent.Plan != nil {
		plan := string(*ent.Plan)
		resp.Plan = &plan
	}

	return resp, nil
}

func (s *EntitlementService) CheckAccess(ctx context.Context, accountID uuid.UUID) (*response_models.EntitlementSnapshot, error) {
	ent, err := s.entitlements.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if ent == nil {
		return nil, utils.ErrAccountNotFound
	}

	snap := Evaluate(ent, s.now())
	return &snap, nil
}

func (s *EntitlementService) Apply(ctx context.Context, accountID uuid.UUID, cmd Command) (*db_models.Entitlement, bool, error) {
	if cmd.EventID == "" {
		cmd.EventID = uuid.NewString()
	}
	now := s.now()
	if cmd.OccurredAt == 0 {
		cmd.OccurredAt = now.Unix()
	}

	// A CAS miss means another command won the race for this account; reload
	// and retry so the loser observes the winner's state.
	for attempt := 0; attempt < 3; attempt++ {
		ent, err := s.entitlements.FindByAccount(ctx, accountID)
		if err != nil {
			return nil, false, utils.ErrDatabaseError
		}

		seen, err := s.ledger.Exists(ctx, accountID, cmd.EventID)
		if err != nil {
			return nil, false, utils.ErrDatabaseError
		}
		if seen {
			return ent, false, nil
		}

		if cmd.Kind == CmdRegister {
			return s.applyRegister(ctx, accountID, ent, cmd)
		}
		if ent == nil {
			return nil, false, utils.ErrAccountNotFound
		}

		last, err := s.ledger.LatestTransition(ctx, accountID)
		if err != nil {
			return nil, false, utils.ErrDatabaseError
		}
		if last != nil && cmd.OccurredAt < last.OccurredAt {
			// Out-of-order delivery must not rewind state.
			log.Printf("entitlement: stale %s for account %s (event %s at %d, head at %d)",
				cmd.Kind, accountID, cmd.EventID, cmd.OccurredAt, last.OccurredAt)
			s.appendNoop(ctx, accountID, cmd, ent.Status)
			return ent, false, nil
		}

		// Fold pending lazy expiry in, evaluated at the command's event time:
		// an event that genuinely occurred before the deadline still sees the
		// pre-expiry state.
		next := *ent
		var expiredAt int64
		if base := effectiveStatus(ent, cmd.OccurredAt); base != ent.Status {
			if ent.Status == db_models.EntStatusTrial {
				expiredAt = *ent.TrialEnd
			} else {
				expiredAt = *ent.GraceEnd
			}
			next.Status = base
		}
		expired := next.Status != ent.Status

		applied := applyCommand(&next, cmd)
		if !applied && !expired {
			s.appendNoop(ctx, accountID, cmd, ent.Status)
			return ent, false, nil
		}

		expectedVersion := ent.Version
		next.Version = expectedVersion + 1
		if err := s.entitlements.UpdateVersioned(ctx, &next, expectedVersion); err != nil {
			if errors.Is(err, utils.ErrConcurrentUpdate) {
				continue
			}
			return nil, false, utils.ErrDatabaseError
		}

		if expired {
			if err := s.appendEntry(ctx, &db_models.LedgerEntry{
				AccountID:       accountID,
				EventID:         uuid.NewString(),
				Cause:           db_models.CauseLazyExpiry,
				OccurredAt:      expiredAt,
				ResultingStatus: db_models.EntStatusPaused,
				Transition:      true,
			}); err != nil {
				return nil, false, utils.ErrDatabaseError
			}
		}

		if err := s.appendEntry(ctx, &db_models.LedgerEntry{
			AccountID:       accountID,
			EventID:         cmd.EventID,
			Cause:           commandCauses[cmd.Kind],
			OccurredAt:      cmd.OccurredAt,
			ResultingStatus: next.Status,
			Transition:      applied,
		}); err != nil {
			return nil, false, utils.ErrDatabaseError
		}

		if applied {
			s.recordPayments(ctx, accountID, cmd)
		}

		return &next, applied, nil
	}

	return nil, false, utils.ErrConcurrentUpdate
}

func (s *EntitlementService) applyRegister(ctx context.Context, accountID uuid.UUID, ent *db_models.Entitlement, cmd Command) (*db_models.Entitlement, bool, error) {
	if ent != nil {
		// has_had_trial is permanent: a second register never grants a trial.
		s.appendNoop(ctx, accountID, cmd, ent.Status)
		return ent, false, nil
	}

	trialEnd := cmd.OccurredAt + int64(TrialPeriod/time.Second)
	next := &db_models.Entitlement{
		AccountID:   accountID,
		Status:      db_models.EntStatusTrial,
		TrialEnd:    &trialEnd,
		HasHadTrial: true,
	}
	if err := s.entitlements.Insert(ctx, next); err != nil {
		// Unique index on account_id: a concurrent register won.
		return nil, false, utils.ErrConcurrentUpdate
	}

	if err := s.appendEntry(ctx, &db_models.LedgerEntry{
		AccountID:       accountID,
		EventID:         cmd.EventID,
		Cause:           db_models.CauseRegister,
		OccurredAt:      cmd.OccurredAt,
		ResultingStatus: next.Status,
		Transition:      true,
	}); err != nil {
		return nil, false, utils.ErrDatabaseError
	}

	return next, true, nil
}

// applyCommand mutates next per the transition table and reports whether the
// command was relevant for the current status. Irrelevant pairs are no-ops by
// design so redelivery of semantically void events never errors.
func applyCommand(next *db_models.Entitlement, cmd Command) bool {
	switch cmd.Kind {
	case CmdCheckoutCompleted:
		switch next.Status {
		case db_models.EntStatusTrial, db_models.EntStatusCanceled, db_models.EntStatusPaused:
			next.Status = db_models.EntStatusActive
			if cmd.Plan != "" {
				plan := cmd.Plan
				next.Plan = &plan
			}
			if cmd.PlanPriceID != "" {
				next.PlanPriceID = cmd.PlanPriceID
			}
			if cmd.GatewayCustomerID != "" {
				next.GatewayCustomerID = cmd.GatewayCustomerID
			}
			if cmd.GatewaySubscriptionID != "" {
				next.GatewaySubscriptionID = cmd.GatewaySubscriptionID
			}
			next.GraceEnd = nil
			// Once true, FeeApplied never resets; reactivation without a fee
			// line item does not charge again.
			if cmd.FeeCharged {
				next.FeeApplied = true
			}
			return true
		}

	case CmdPaymentFailed:
		if next.Status == db_models.EntStatusActive {
			next.Status = db_models.EntStatusGrace
			graceEnd := cmd.OccurredAt + int64(GracePeriod/time.Second)
			next.GraceEnd = &graceEnd
			return true
		}

	case CmdPaymentSucceeded:
		if next.Status == db_models.EntStatusGrace {
			next.Status = db_models.EntStatusActive
			next.GraceEnd = nil
			return true
		}

	case CmdUserCancel:
		if next.Status == db_models.EntStatusActive || next.Status == db_models.EntStatusGrace {
			next.Status = db_models.EntStatusCanceled
			next.GatewaySubscriptionID = ""
			next.GraceEnd = nil
			return true
		}

	case CmdGatewaySubscriptionDeleted:
		if next.Status == db_models.EntStatusActive || next.Status == db_models.EntStatusGrace {
			next.Status = db_models.EntStatusCanceled
			return true
		}
	}

	return false
}

// recordPayments resolves payment records touched by a gateway-confirmed
// checkout. Best effort: the entitlement transition already committed.
func (s *EntitlementService) recordPayments(ctx context.Context, accountID uuid.UUID, cmd Command) {
	if cmd.Kind != CmdCheckoutCompleted || cmd.CheckoutSessionID == "" {
		return
	}

	if err := s.payments.UpdateOutcome(ctx, cmd.CheckoutSessionID, db_models.PaymentStatusSucceeded); err != nil {
		log.Printf("entitlement: mark payment succeeded for session %s: %v", cmd.CheckoutSessionID, err)
	}

	if cmd.FeeCharged && cmd.FeeMinor > 0 {
		fee := &db_models.PaymentRecord{
			AccountID:         accountID,
			CheckoutSessionID: cmd.CheckoutSessionID,
			AmountMinor:       cmd.FeeMinor,
			Currency:          cmd.Currency,
			Kind:              db_models.PaymentKindFee,
			Status:            db_models.PaymentStatusSucceeded,
			Plan:              cmd.Plan,
		}
		if err := s.payments.Insert(ctx, fee); err != nil {
			log.Printf("entitlement: record onboarding fee for session %s: %v", cmd.CheckoutSessionID, err)
		}
	}
}

func (s *EntitlementService) appendNoop(ctx context.Context, accountID uuid.UUID, cmd Command, current db_models.EntitlementStatus) {
	cause := commandCauses[cmd.Kind]
	if cause == "" {
		cause = db_models.CauseIgnored
	}
	err := s.appendEntry(ctx, &db_models.LedgerEntry{
		AccountID:       accountID,
		EventID:         cmd.EventID,
		Cause:           cause,
		OccurredAt:      cmd.OccurredAt,
		ResultingStatus: current,
		Transition:      false,
	})
	if err != nil {
		log.Printf("entitlement: ledger no-op for event %s: %v", cmd.EventID, err)
	}
}

func (s *EntitlementService) appendEntry(ctx context.Context, entry *db_models.LedgerEntry) error {
	entry.RecordedAt = s.now().Unix()
	return s.ledger.Append(ctx, entry)
}
