package response_models

// EntitlementSnapshot is the status evaluator output: the authoritative view
// of an account's entitlement at one instant. Status is the effective status,
// which may differ from the stored one while a lazy expiry is pending.
type EntitlementSnapshot struct {
	Entitled      bool   `json:"entitled"`
	Status        string `json:"status"`
	DaysRemaining *int   `json:"days_remaining"`
	CanReactivate bool   `json:"can_reactivate"`
}

type EntitlementStatusResponse struct {
	EntitlementSnapshot
	Plan     *string `json:"plan,omitempty"`
	TrialEnd *int64  `json:"trial_end,omitempty"`
	GraceEnd *int64  `json:"grace_end,omitempty"`
}

type AccessCheckResponse struct {
	AccessGranted bool   `json:"access_granted"`
	Message       string `json:"message"`
}
