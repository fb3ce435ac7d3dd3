package utils

import "errors"

var (
	RecordNotFound        = errors.New("record not found")
	ErrDatabaseError      = errors.New("database error")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPlanNotFound       = errors.New("plan not found")

	// Entitlement engine taxonomy. Stale and unrecognized events are not
	// errors: they are ledgered no-ops so the gateway can be acknowledged.
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrAccessPaused        = errors.New("account is paused")
	ErrInvalidConfirmation = errors.New("confirmation text mismatch")
	ErrConcurrentUpdate    = errors.New("concurrent entitlement update")

	// ErrGatewayError means the payment gateway rejected the request; it is a
	// client-visible failure, distinct from our own server errors.
	ErrGatewayError = errors.New("payment gateway error")
)
