package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
	"stagekit/internal/models/db_models"
	"stagekit/pkg/utils"
)

const testWebhookSecret = "whsec_test_stagekit"

func signPayload(t *testing.T, secret string, payload []byte) string {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return signed.Header
}

func eventJSON(t *testing.T, id, eventType string, created time.Time, object map[string]interface{}) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":      id,
		"type":    eventType,
		"created": created.Unix(),
		"data":    map[string]interface{}{"object": object},
	})
	require.NoError(t, err)
	return payload
}

func newWebhookHarness(t *testing.T) (WebhookServiceInterface, *EntitlementService, *fakeEntitlementRepo, *fakeLedgerRepo) {
	t.Helper()
	engine, ents, ledger, _ := newTestEngine()
	svc := NewWebhookService(testWebhookSecret, engine, ents)
	return svc, engine, ents, ledger
}

func TestWebhookCheckoutCompletedActivates(t *testing.T) {
	svc, engine, ents, _ := newWebhookHarness(t)
	accountID := uuid.New()
	register(t, engine, accountID, baseTime)

	payload := eventJSON(t, "evt_wh_1", "checkout.session.completed", baseTime.Add(time.Hour), map[string]interface{}{
		"id":                  "cs_wh_1",
		"client_reference_id": accountID.String(),
		"customer":            "cus_wh",
		"subscription":        "sub_wh",
		"amount_total":        999,
		"currency":            "usd",
		"metadata": map[string]string{
			"plan_cycle":  "monthly",
			"price_id":    "price_monthly",
			"fee_charged": "true",
			"fee_minor":   "500",
		},
	})

	err := svc.HandleEvent(context.Background(), payload, signPayload(t, testWebhookSecret, payload))
	require.NoError(t, err)

	ent, _ := ents.FindByAccount(context.Background(), accountID)
	assert.Equal(t, db_models.EntStatusActive, ent.Status)
	assert.Equal(t, "cus_wh", ent.GatewayCustomerID)
	assert.Equal(t, "sub_wh", ent.GatewaySubscriptionID)
	assert.True(t, ent.FeeApplied)
}

func TestWebhookInvalidSignatureRecordsNothing(t *testing.T) {
	svc, engine, _, ledger := newWebhookHarness(t)
	accountID := uuid.New()
	register(t, engine, accountID, baseTime)
	before := ledger.countByEvent(accountID, "evt_forged")

	payload := eventJSON(t, "evt_forged", "checkout.session.completed", baseTime, map[string]interface{}{
		"id":                  "cs_forged",
		"client_reference_id": accountID.String(),
	})

	err := svc.HandleEvent(context.Background(), payload, signPayload(t, "whsec_wrong", payload))
	assert.ErrorIs(t, err, utils.ErrInvalidSignature)
	assert.Equal(t, before, ledger.countByEvent(accountID, "evt_forged"))
}

func TestWebhookPaymentFailureRoutesByCustomer(t *testing.T) {
	svc, engine, ents, _ := newWebhookHarness(t)
	accountID := uuid.New()
	register(t, engine, accountID, baseTime)
	engine.Apply(context.Background(), accountID, checkout(accountID, "evt_co", baseTime.Add(time.Hour)))

	ent, _ := ents.FindByAccount(context.Background(), accountID)
	customer := ent.GatewayCustomerID

	payload := eventJSON(t, "evt_inv_fail", "invoice.payment_failed", baseTime.Add(48*time.Hour), map[string]interface{}{
		"id":       "in_1",
		"customer": customer,
	})
	require.NoError(t, svc.HandleEvent(context.Background(), payload, signPayload(t, testWebhookSecret, payload)))

	ent, _ = ents.FindByAccount(context.Background(), accountID)
	assert.Equal(t, db_models.EntStatusGrace, ent.Status)

	payload = eventJSON(t, "evt_inv_ok", "invoice.payment_succeeded", baseTime.Add(72*time.Hour), map[string]interface{}{
		"id":       "in_2",
		"customer": customer,
	})
	require.NoError(t, svc.HandleEvent(context.Background(), payload, signPayload(t, testWebhookSecret, payload)))

	ent, _ = ents.FindByAccount(context.Background(), accountID)
	assert.Equal(t, db_models.EntStatusActive, ent.Status)
}

func TestWebhookSubscriptionDeletedCancels(t *testing.T) {
	svc, engine, ents, _ := newWebhookHarness(t)
	accountID := uuid.New()
	register(t, engine, accountID, baseTime)
	engine.Apply(context.Background(), accountID, checkout(accountID, "evt_co", baseTime.Add(time.Hour)))

	ent, _ := ents.FindByAccount(context.Background(), accountID)
	payload := eventJSON(t, "evt_sub_del", "customer.subscription.deleted", baseTime.Add(5*24*time.Hour), map[string]interface{}{
		"id":       ent.GatewaySubscriptionID,
		"customer": ent.GatewayCustomerID,
	})
	require.NoError(t, svc.HandleEvent(context.Background(), payload, signPayload(t, testWebhookSecret, payload)))

	ent, _ = ents.FindByAccount(context.Background(), accountID)
	assert.Equal(t, db_models.EntStatusCanceled, ent.Status)
}

func TestWebhookReplayIsAcknowledgedOnce(t *testing.T) {
	svc, engine, _, ledger := newWebhookHarness(t)
	accountID := uuid.New()
	register(t, engine, accountID, baseTime)

	payload := eventJSON(t, "evt_replay", "checkout.session.completed", baseTime.Add(time.Hour), map[string]interface{}{
		"id":                  "cs_replay",
		"client_reference_id": accountID.String(),
		"metadata":            map[string]string{"plan_cycle": "monthly"},
	})
	sig := signPayload(t, testWebhookSecret, payload)

	require.NoError(t, svc.HandleEvent(context.Background(), payload, sig))
	// Redelivery acks without a second ledger entry.
	require.NoError(t, svc.HandleEvent(context.Background(), payload, sig))
	assert.Equal(t, 1, ledger.countByEvent(accountID, "evt_replay"))
}

func TestWebhookIgnoresUnknownTypesAndCustomers(t *testing.T) {
	svc, _, _, _ := newWebhookHarness(t)

	cases := []struct {
		name    string
		payload []byte
	}{
		{
			name: "unhandled event type",
			payload: eventJSON(t, "evt_other", "invoice.finalized", baseTime, map[string]interface{}{
				"id": "in_x",
			}),
		},
		{
			name: "unknown gateway customer",
			payload: eventJSON(t, "evt_orphan", "invoice.payment_failed", baseTime, map[string]interface{}{
				"id":       "in_y",
				"customer": "cus_nobody",
			}),
		},
		{
			name: "checkout without client reference",
			payload: eventJSON(t, "evt_noref", "checkout.session.completed", baseTime, map[string]interface{}{
				"id": "cs_noref",
			}),
		},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := signPayload(t, testWebhookSecret, tc.payload)
			assert.NoError(t, svc.HandleEvent(context.Background(), tc.payload, sig), fmt.Sprintf("case %d", i))
		})
	}
}

func TestWebhookErasedAccountIsAcknowledged(t *testing.T) {
	svc, _, _, _ := newWebhookHarness(t)

	// The gateway still knows this account; we no longer do.
	payload := eventJSON(t, "evt_ghost", "checkout.session.completed", baseTime, map[string]interface{}{
		"id":                  "cs_ghost",
		"client_reference_id": uuid.NewString(),
	})
	err := svc.HandleEvent(context.Background(), payload, signPayload(t, testWebhookSecret, payload))
	assert.NoError(t, err)
}
