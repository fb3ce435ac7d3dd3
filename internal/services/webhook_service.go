package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82/webhook"
	"stagekit/internal/models/db_models"
	"stagekit/internal/repositories"
	"stagekit/pkg/utils"
)

// Minimal payload shapes decoded from event.Data.Raw. Webhook deliveries are
// unexpanded, so customer/subscription arrive as plain ids.
type checkoutSessionPayload struct {
	ID                string            `json:"id"`
	ClientReferenceID string            `json:"client_reference_id"`
	Customer          string            `json:"customer"`
	Subscription      string            `json:"subscription"`
	Metadata          map[string]string `json:"metadata"`
	AmountTotal       int64             `json:"amount_total"`
	Currency          string            `json:"currency"`
}

type invoicePayload struct {
	Customer string `json:"customer"`
}

type subscriptionPayload struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
}

type WebhookServiceInterface interface {
	// HandleEvent verifies the payload signature and runs the mapped command.
	// Only utils.ErrInvalidSignature rejects; every authenticated event is
	// acknowledged once it is durably recorded, even as a no-op, so the
	// gateway never retries forever.
	HandleEvent(ctx context.Context, payload []byte, sigHeader string) error
}

type webhookService struct {
	secret       string
	engine       EntitlementServiceInterface
	entitlements repositories.EntitlementRepository
}

func NewWebhookService(secret string, engine EntitlementServiceInterface, entitlements repositories.EntitlementRepository) WebhookServiceInterface {
	return &webhookService{
		secret:       secret,
		engine:       engine,
		entitlements: entitlements,
	}
}

func (w *webhookService) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, w.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		// Nothing is recorded for unauthenticated payloads; the sender must
		// retry with a legitimate signature.
		return utils.ErrInvalidSignature
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess checkoutSessionPayload
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("webhook: decode checkout.session %s: %v", event.ID, err)
			return nil
		}

		accountID, err := uuid.Parse(sess.ClientReferenceID)
		if err != nil {
			log.Printf("webhook: event %s carries no usable client reference %q", event.ID, sess.ClientReferenceID)
			return nil
		}

		feeMinor, _ := strconv.ParseInt(sess.Metadata["fee_minor"], 10, 64)
		cmd := Command{
			Kind:                  CmdCheckoutCompleted,
			EventID:               event.ID,
			OccurredAt:            event.Created,
			Plan:                  db_models.PlanCycle(sess.Metadata["plan_cycle"]),
			PlanPriceID:           sess.Metadata["price_id"],
			GatewayCustomerID:     sess.Customer,
			GatewaySubscriptionID: sess.Subscription,
			CheckoutSessionID:     sess.ID,
			FeeCharged:            sess.Metadata["fee_charged"] == "true",
			FeeMinor:              feeMinor,
			AmountMinor:           sess.AmountTotal,
			Currency:              sess.Currency,
		}
		return w.apply(ctx, accountID, cmd)

	case "invoice.payment_failed":
		return w.applyByCustomer(ctx, event.ID, event.Created, CmdPaymentFailed, customerOf(event.Data.Raw, event.ID))

	case "invoice.payment_succeeded":
		return w.applyByCustomer(ctx, event.ID, event.Created, CmdPaymentSucceeded, customerOf(event.Data.Raw, event.ID))

	case "customer.subscription.deleted":
		var sub subscriptionPayload
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Printf("webhook: decode subscription %s: %v", event.ID, err)
			return nil
		}
		return w.applyByCustomer(ctx, event.ID, event.Created, CmdGatewaySubscriptionDeleted, sub.Customer)

	default:
		// Authenticated but irrelevant. Acknowledge so the gateway stops.
		log.Printf("webhook: ignored event type %s (%s)", event.Type, event.ID)
		return nil
	}
}

func customerOf(raw json.RawMessage, eventID string) string {
	var inv invoicePayload
	if err := json.Unmarshal(raw, &inv); err != nil {
		log.Printf("webhook: decode invoice %s: %v", eventID, err)
		return ""
	}
	return inv.Customer
}

func (w *webhookService) applyByCustomer(ctx context.Context, eventID string, occurredAt int64, kind CommandKind, customerID string) error {
	if customerID == "" {
		return nil
	}

	ent, err := w.entitlements.FindByGatewayCustomer(ctx, customerID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if ent == nil {
		log.Printf("webhook: no account for gateway customer %s (event %s)", customerID, eventID)
		return nil
	}

	return w.apply(ctx, ent.AccountID, Command{
		Kind:       kind,
		EventID:    eventID,
		OccurredAt: occurredAt,
	})
}

func (w *webhookService) apply(ctx context.Context, accountID uuid.UUID, cmd Command) error {
	_, applied, err := w.engine.Apply(ctx, accountID, cmd)
	if errors.Is(err, utils.ErrAccountNotFound) {
		// Gateway knows an account we no longer do (e.g. erased); retrying
		// will never help, so acknowledge.
		log.Printf("webhook: event %s targets unknown account %s", cmd.EventID, accountID)
		return nil
	}
	if err != nil {
		return err
	}
	if !applied {
		log.Printf("webhook: event %s for account %s was a no-op", cmd.EventID, accountID)
	}
	return nil
}
