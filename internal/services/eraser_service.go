package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"stagekit/internal/repositories"
	"stagekit/pkg/utils"
)

// ConfirmationText is the literal an account owner must type to erase the
// account. Anything else is rejected with no side effects.
const ConfirmationText = "DELETE"

type EraserServiceInterface interface {
	// Erase cascades deletion across every aggregate the account owns.
	// Re-runnable: deleting what is already gone is a no-op, so a partially
	// failed erase can be retried to completion.
	Erase(ctx context.Context, accountID uuid.UUID, confirmation string) error
}

type eraserService struct {
	accounts     repositories.AccountRepository
	entitlements repositories.EntitlementRepository
	ledger       repositories.LedgerRepository
	payments     repositories.PaymentRepository
	songs        repositories.SongRepository
	requests     repositories.RequestRepository
	playlists    repositories.PlaylistRepository
}

func NewEraserService(
	accounts repositories.AccountRepository,
	entitlements repositories.EntitlementRepository,
	ledger repositories.LedgerRepository,
	payments repositories.PaymentRepository,
	songs repositories.SongRepository,
	requests repositories.RequestRepository,
	playlists repositories.PlaylistRepository) EraserServiceInterface {
	return &eraserService{
		accounts:     accounts,
		entitlements: entitlements,
		ledger:       ledger,
		payments:     payments,
		songs:        songs,
		requests:     requests,
		playlists:    playlists,
	}
}

func (e *eraserService) Erase(ctx context.Context, accountID uuid.UUID, confirmation string) error {
	if confirmation != ConfirmationText {
		return utils.ErrInvalidConfirmation
	}

	// Sibling aggregates first, the account row last, so a retry after a
	// partial failure still finds the account and can resume.
	steps := []struct {
		name string
		fn   func(context.Context, uuid.UUID) error
	}{
		{"requests", e.requests.DeleteByAccount},
		{"playlists", e.playlists.DeleteByAccount},
		{"songs", e.songs.DeleteByAccount},
		{"payments", e.payments.DeleteByAccount},
		{"ledger", e.ledger.DeleteByAccount},
		{"entitlement", e.entitlements.DeleteByAccount},
		{"account", func(ctx context.Context, id uuid.UUID) error { return e.accounts.DeleteById(ctx, id) }},
	}

	for _, step := range steps {
		if err := step.fn(ctx, accountID); err != nil {
			log.Printf("eraser: delete %s for account %s: %v", step.name, accountID, err)
			return utils.ErrDatabaseError
		}
	}

	return nil
}
