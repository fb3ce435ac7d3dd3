package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"stagekit/internal/models/db_models"
	"stagekit/pkg/utils"
)

// In-memory repositories so the transition engine can be exercised without a
// database. They honor the same contracts the gorm implementations do:
// not-found reads return nil, nil and the versioned update is conditional.

type fakeEntitlementRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*db_models.Entitlement

	// failUpdates makes the next N versioned updates miss, to simulate a
	// concurrent writer winning the race.
	failUpdates int
}

func newFakeEntitlementRepo() *fakeEntitlementRepo {
	return &fakeEntitlementRepo{rows: make(map[uuid.UUID]*db_models.Entitlement)}
}

func (f *fakeEntitlementRepo) FindByAccount(_ context.Context, accountID uuid.UUID) (*db_models.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ent, ok := f.rows[accountID]
	if !ok {
		return nil, nil
	}
	cp := *ent
	return &cp, nil
}

func (f *fakeEntitlementRepo) FindByGatewayCustomer(_ context.Context, customerID string) (*db_models.Entitlement, error) {
	if customerID == "" {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ent := range f.rows {
		if ent.GatewayCustomerID == customerID {
			cp := *ent
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEntitlementRepo) Insert(_ context.Context, ent *db_models.Entitlement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[ent.AccountID]; ok {
		return errors.New("duplicate account_id")
	}
	if ent.ID == uuid.Nil {
		ent.ID = uuid.New()
	}
	cp := *ent
	f.rows[ent.AccountID] = &cp
	return nil
}

func (f *fakeEntitlementRepo) UpdateVersioned(_ context.Context, ent *db_models.Entitlement, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdates > 0 {
		f.failUpdates--
		return utils.ErrConcurrentUpdate
	}
	current, ok := f.rows[ent.AccountID]
	if !ok || current.Version != expectedVersion {
		return utils.ErrConcurrentUpdate
	}
	cp := *ent
	f.rows[ent.AccountID] = &cp
	return nil
}

func (f *fakeEntitlementRepo) DeleteByAccount(_ context.Context, accountID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, accountID)
	return nil
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []db_models.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (f *fakeLedgerRepo) Exists(_ context.Context, accountID uuid.UUID, eventID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.AccountID == accountID && e.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedgerRepo) LatestTransition(_ context.Context, accountID uuid.UUID) (*db_models.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *db_models.LedgerEntry
	for i := range f.entries {
		e := &f.entries[i]
		if e.AccountID != accountID || !e.Transition {
			continue
		}
		if latest == nil ||
			e.OccurredAt > latest.OccurredAt ||
			(e.OccurredAt == latest.OccurredAt && e.RecordedAt > latest.RecordedAt) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeLedgerRepo) Append(_ context.Context, entry *db_models.LedgerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.AccountID == entry.AccountID && e.EventID == entry.EventID {
			return errors.New("duplicate ledger event")
		}
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLedgerRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]db_models.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.LedgerEntry
	for _, e := range f.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) DeleteByAccount(_ context.Context, accountID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.AccountID != accountID {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeLedgerRepo) countByEvent(accountID uuid.UUID, eventID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if e.AccountID == accountID && e.EventID == eventID {
			n++
		}
	}
	return n
}

func (f *fakeLedgerRepo) countByCause(accountID uuid.UUID, cause db_models.LedgerCause) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if e.AccountID == accountID && e.Cause == cause {
			n++
		}
	}
	return n
}

type fakePaymentRepo struct {
	mu      sync.Mutex
	records []db_models.PaymentRecord
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (f *fakePaymentRepo) Insert(_ context.Context, record *db_models.PaymentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakePaymentRepo) FindBySession(_ context.Context, accountID uuid.UUID, sessionID string) (*db_models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.AccountID == accountID && r.CheckoutSessionID == sessionID && r.Kind == db_models.PaymentKindSubscription {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) UpdateOutcome(_ context.Context, sessionID string, status db_models.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].CheckoutSessionID == sessionID && f.records[i].Kind == db_models.PaymentKindSubscription {
			f.records[i].Status = status
		}
	}
	return nil
}

func (f *fakePaymentRepo) SetSessionID(_ context.Context, recordID uuid.UUID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == recordID {
			f.records[i].CheckoutSessionID = sessionID
		}
	}
	return nil
}

func (f *fakePaymentRepo) DeleteByAccount(_ context.Context, accountID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	for _, r := range f.records {
		if r.AccountID != accountID {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

type fakeAccountRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*db_models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{rows: make(map[uuid.UUID]*db_models.Account)}
}

func (f *fakeAccountRepo) Insert(_ context.Context, account *db_models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	cp := *account
	f.rows[account.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *account
	return &cp, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.rows {
		if account.Email == email {
			cp := *account
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) DeleteById(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

type fakeSongRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*db_models.Song
}

func newFakeSongRepo() *fakeSongRepo {
	return &fakeSongRepo{rows: make(map[uuid.UUID]*db_models.Song)}
}

func (f *fakeSongRepo) Insert(_ context.Context, song *db_models.Song) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if song.ID == uuid.Nil {
		song.ID = uuid.New()
	}
	cp := *song
	f.rows[song.ID] = &cp
	return nil
}

func (f *fakeSongRepo) Update(_ context.Context, song *db_models.Song) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *song
	f.rows[song.ID] = &cp
	return nil
}

func (f *fakeSongRepo) FindById(_ context.Context, accountID, id uuid.UUID) (*db_models.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	song, ok := f.rows[id]
	if !ok || song.AccountID != accountID {
		return nil, nil
	}
	cp := *song
	return &cp, nil
}

func (f *fakeSongRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]db_models.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Song
	for _, song := range f.rows {
		if song.AccountID == accountID {
			out = append(out, *song)
		}
	}
	return out, nil
}

func (f *fakeSongRepo) ListActiveByAccount(_ context.Context, accountID uuid.UUID) ([]db_models.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Song
	for _, song := range f.rows {
		if song.AccountID == accountID && song.Active {
			out = append(out, *song)
		}
	}
	return out, nil
}

func (f *fakeSongRepo) DeleteById(_ context.Context, accountID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	song, ok := f.rows[id]
	if ok && song.AccountID == accountID {
		delete(f.rows, id)
	}
	return nil
}

func (f *fakeSongRepo) DeleteByAccount(_ context.Context, accountID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, song := range f.rows {
		if song.AccountID == accountID {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakeRequestRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*db_models.SongRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: make(map[uuid.UUID]*db_models.SongRequest)}
}

func (f *fakeRequestRepo) Insert(_ context.Context, request *db_models.SongRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	cp := *request
	f.rows[request.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) FindById(_ context.Context, accountID, id uuid.UUID) (*db_models.SongRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.rows[id]
	if !ok || request.AccountID != accountID {
		return nil, nil
	}
	cp := *request
	return &cp, nil
}

func (f *fakeRequestRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]db_models.SongRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.SongRequest
	for _, request := range f.rows {
		if request.AccountID == accountID {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, accountID, id uuid.UUID, status db_models.RequestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.rows[id]
	if !ok || request.AccountID != accountID {
		return utils.RecordNotFound
	}
	request.Status = status
	return nil
}

func (f *fakeRequestRepo) DeleteByAccount(_ context.Context, accountID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, request := range f.rows {
		if request.AccountID == accountID {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakePlaylistRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*db_models.Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{rows: make(map[uuid.UUID]*db_models.Playlist)}
}

func (f *fakePlaylistRepo) Insert(_ context.Context, playlist *db_models.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	cp := *playlist
	f.rows[playlist.ID] = &cp
	return nil
}

func (f *fakePlaylistRepo) Update(_ context.Context, playlist *db_models.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *playlist
	f.rows[playlist.ID] = &cp
	return nil
}

func (f *fakePlaylistRepo) FindById(_ context.Context, accountID, id uuid.UUID) (*db_models.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	playlist, ok := f.rows[id]
	if !ok || playlist.AccountID != accountID {
		return nil, nil
	}
	cp := *playlist
	return &cp, nil
}

func (f *fakePlaylistRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]db_models.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Playlist
	for _, playlist := range f.rows {
		if playlist.AccountID == accountID {
			out = append(out, *playlist)
		}
	}
	return out, nil
}

func (f *fakePlaylistRepo) DeleteById(_ context.Context, accountID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	playlist, ok := f.rows[id]
	if ok && playlist.AccountID == accountID {
		delete(f.rows, id)
	}
	return nil
}

func (f *fakePlaylistRepo) DeleteByAccount(_ context.Context, accountID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, playlist := range f.rows {
		if playlist.AccountID == accountID {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakeGateway struct {
	mu       sync.Mutex
	sessions []CheckoutSessionParams
	canceled []string

	createErr error
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.sessions = append(f.sessions, params)
	return &CheckoutSession{
		ID:  "cs_test_" + uuid.NewString()[:8],
		URL: "https://checkout.example.com/session",
	}, nil
}

func (f *fakeGateway) CancelSubscription(_ context.Context, subscriptionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canceled = append(f.canceled, subscriptionID)
	return nil
}
