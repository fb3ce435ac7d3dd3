package response_models

import "github.com/google/uuid"

type CreateCheckoutResponse struct {
	RedirectURL string `json:"redirect_url"`
	SessionID   string `json:"session_id"`
}

type PaymentStatusResponse struct {
	SessionID   string `json:"session_id"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
}

type SubscriptionPlan struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Cycle         string    `json:"cycle"`
	PriceMinor    int64     `json:"price_minor"`
	SetupFeeMinor int64     `json:"setup_fee_minor"`
	Currency      string    `json:"currency"`
	IsActive      bool      `json:"is_active"`
}
