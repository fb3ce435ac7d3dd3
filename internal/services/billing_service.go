package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"stagekit/internal/models/db_models"
	"stagekit/internal/models/response_models"
	"stagekit/internal/repositories"
	"stagekit/pkg/utils"
)

type BillingServiceInterface interface {
	// StartCheckout creates a pending payment record and a hosted checkout
	// session. No entitlement mutation happens here; only the webhook does.
	StartCheckout(ctx context.Context, accountID uuid.UUID, cycle db_models.PlanCycle) (*response_models.CreateCheckoutResponse, error)
	CheckoutStatus(ctx context.Context, accountID uuid.UUID, sessionID string) (*response_models.PaymentStatusResponse, error)
	// Cancel deactivates immediately (hard cancel), not at period end.
	Cancel(ctx context.Context, accountID uuid.UUID) error
	ListPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error)
}

type billingService struct {
	plans        repositories.IPlanRepository
	payments     repositories.PaymentRepository
	entitlements repositories.EntitlementRepository
	engine       EntitlementServiceInterface
	gateway      PaymentGateway
}

func NewBillingService(
	plans repositories.IPlanRepository,
	payments repositories.PaymentRepository,
	entitlements repositories.EntitlementRepository,
	engine EntitlementServiceInterface,
	gateway PaymentGateway) BillingServiceInterface {
	return &billingService{
		plans:        plans,
		payments:     payments,
		entitlements: entitlements,
		engine:       engine,
		gateway:      gateway,
	}
}

func (b *billingService) StartCheckout(ctx context.Context, accountID uuid.UUID, cycle db_models.PlanCycle) (*response_models.CreateCheckoutResponse, error) {
	plan, err := b.plans.GetActivePlanByCycle(ctx, cycle)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	ent, err := b.entitlements.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if ent == nil {
		return nil, utils.ErrAccountNotFound
	}

	// The onboarding fee is a one-time line item: only sessions for accounts
	// that never paid it carry the fee price.
	feePriceID := ""
	if !ent.FeeApplied && plan.GatewayFeePriceID != "" {
		feePriceID = plan.GatewayFeePriceID
	}

	record := &db_models.PaymentRecord{
		AccountID:   accountID,
		AmountMinor: plan.PriceMinor,
		Currency:    plan.Currency,
		Kind:        db_models.PaymentKindSubscription,
		Status:      db_models.PaymentStatusPending,
		Plan:        plan.Cycle,
	}
	if err := b.payments.Insert(ctx, record); err != nil {
		return nil, utils.ErrDatabaseError
	}

	sess, err := b.gateway.CreateCheckoutSession(ctx, CheckoutSessionParams{
		AccountID:  accountID.String(),
		PriceID:    plan.GatewayPriceID,
		FeePriceID: feePriceID,
		FeeMinor:   plan.SetupFeeMinor,
		Currency:   plan.Currency,
		Plan:       plan.Cycle,
	})
	if err != nil {
		log.Printf("billing: checkout session for account %s: %v", accountID, err)
		return nil, utils.ErrGatewayError
	}

	if err := b.payments.SetSessionID(ctx, record.ID, sess.ID); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CreateCheckoutResponse{
		RedirectURL: sess.URL,
		SessionID:   sess.ID,
	}, nil
}

func (b *billingService) CheckoutStatus(ctx context.Context, accountID uuid.UUID, sessionID string) (*response_models.PaymentStatusResponse, error) {
	record, err := b.payments.FindBySession(ctx, accountID, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if record == nil {
		return nil, utils.RecordNotFound
	}

	return &response_models.PaymentStatusResponse{
		SessionID:   record.CheckoutSessionID,
		AmountMinor: record.AmountMinor,
		Currency:    record.Currency,
		Kind:        string(record.Kind),
		Status:      string(record.Status),
	}, nil
}

func (b *billingService) Cancel(ctx context.Context, accountID uuid.UUID) error {
	ent, err := b.entitlements.FindByAccount(ctx, accountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if ent == nil {
		return utils.ErrAccountNotFound
	}

	// Gateway-side cancel is best effort: the local transition is
	// authoritative and a dangling gateway subscription resolves itself via
	// the subscription.deleted webhook.
	if ent.GatewaySubscriptionID != "" {
		if err := b.gateway.CancelSubscription(ctx, ent.GatewaySubscriptionID); err != nil {
			log.Printf("billing: gateway cancel for account %s: %v", accountID, err)
		}
	}

	_, _, err = b.engine.Apply(ctx, accountID, Command{Kind: CmdUserCancel})
	return err
}

func (b *billingService) ListPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error) {
	plans, err := b.plans.GetAllPlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.SubscriptionPlan, 0, len(plans))
	for _, plan := range plans {
		result = append(result, response_models.SubscriptionPlan{
			ID:            plan.ID,
			Code:          plan.Code,
			Name:          plan.Name,
			Description:   plan.Description,
			Cycle:         string(plan.Cycle),
			PriceMinor:    plan.PriceMinor,
			SetupFeeMinor: plan.SetupFeeMinor,
			Currency:      plan.Currency,
			IsActive:      plan.IsActive,
		})
	}

	return result, nil
}
