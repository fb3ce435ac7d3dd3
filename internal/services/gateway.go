package services

import (
	"context"
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/subscription"
	"stagekit/internal/models/db_models"
)

// CheckoutSessionParams describes a hosted checkout to create on the gateway.
type CheckoutSessionParams struct {
	AccountID  string
	PriceID    string
	FeePriceID string // empty when the onboarding fee was already charged
	FeeMinor   int64
	Currency   string
	Plan       db_models.PlanCycle
}

type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway is the gateway boundary: hosted checkout sessions and
// subscription cancellation. Webhook verification lives with ingestion, not
// here, because it needs raw request bytes.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type stripeGateway struct {
	cfg StripeConfig
}

func NewStripeGateway(cfg StripeConfig) PaymentGateway {
	stripe.Key = cfg.APIKey
	return &stripeGateway{cfg: cfg}
}

func (g *stripeGateway) CreateCheckoutSession(_ context.Context, p CheckoutSessionParams) (*CheckoutSession, error) {
	lineItems := []*stripe.CheckoutSessionLineItemParams{
		{
			Price:    stripe.String(p.PriceID),
			Quantity: stripe.Int64(1),
		},
	}
	if p.FeePriceID != "" {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(p.FeePriceID),
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems:         lineItems,
		ClientReferenceID: stripe.String(p.AccountID),
		SuccessURL:        stripe.String(g.cfg.SuccessURL),
		CancelURL:         stripe.String(g.cfg.CancelURL),
	}
	params.AddMetadata("plan_cycle", string(p.Plan))
	params.AddMetadata("price_id", p.PriceID)
	if p.FeePriceID != "" {
		params.AddMetadata("fee_charged", "true")
		params.AddMetadata("fee_minor", strconv.FormatInt(p.FeeMinor, 10))
		params.AddMetadata("currency", p.Currency)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *stripeGateway) CancelSubscription(_ context.Context, subscriptionID string) error {
	if _, err := subscription.Cancel(subscriptionID, &stripe.SubscriptionCancelParams{}); err != nil {
		return fmt.Errorf("stripe cancel subscription: %w", err)
	}
	return nil
}
