package service

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/payment"
	"github.com/vogiaan1904/swiftseats/internal/repository"
)

// memStore is a transactional in-memory stand-in for Postgres. WithTx
// serializes transactions and restores a snapshot when fn fails.
type memStore struct {
	mu       sync.Mutex
	events   map[string]models.Event
	users    map[string]models.User
	payments map[string]models.Payment
	bookings map[string]models.Booking
	recs     map[string]models.Reconciliation
	reviews  map[string]models.Review
	outbox   []models.OutboxMessage
	fail     map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		events:   map[string]models.Event{},
		users:    map[string]models.User{},
		payments: map[string]models.Payment{},
		bookings: map[string]models.Booking{},
		recs:     map[string]models.Reconciliation{},
		reviews:  map[string]models.Review{},
		fail:     map[string]error{},
	}
}

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	events, users := maps.Clone(m.events), maps.Clone(m.users)
	payments, bookings := maps.Clone(m.payments), maps.Clone(m.bookings)
	recs, outbox := maps.Clone(m.recs), slices.Clone(m.outbox)

	if err := fn(ctx); err != nil {
		m.events, m.users = events, users
		m.payments, m.bookings = payments, bookings
		m.recs, m.outbox = recs, outbox
		return err
	}
	return nil
}

func (m *memStore) failure(op string) error {
	return m.fail[op]
}

func (m *memStore) repos() ReconcileRepositories {
	return ReconcileRepositories{
		Payments:        memPayments{m},
		Bookings:        memBookings{m},
		Users:           memUsers{m},
		Reconciliations: memRecs{m},
		Outbox:          memOutbox{m},
	}
}

func (m *memStore) addUser(id string, role models.Role) {
	m.users[id] = models.User{ID: id, Username: id, Email: id + "@example.com", Role: role}
}

func (m *memStore) addEvent(id, organizerID string, available, booked int) {
	m.events[id] = models.Event{
		ID:             id,
		Title:          "Event " + id,
		Date:           time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC),
		AvailableSeats: available,
		BookedSeats:    booked,
		OrganizerID:    organizerID,
	}
}

// events

type memEvents struct{ *memStore }

func (r memEvents) Create(_ context.Context, e *models.Event) error {
	if _, ok := r.users[e.OrganizerID]; !ok {
		return repository.ErrInvalidReference
	}
	e.CreatedAt = time.Now()
	r.events[e.ID] = *e
	return nil
}

func (r memEvents) Get(_ context.Context, id string) (*models.Event, error) {
	if err := r.failure("events.Get"); err != nil {
		return nil, err
	}
	e, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r memEvents) List(_ context.Context, f models.EventFilter) ([]models.Event, error) {
	contains := func(field, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(field), strings.ToLower(sub))
	}
	out := make([]models.Event, 0)
	for _, id := range slices.Sorted(maps.Keys(r.events)) {
		e := r.events[id]
		if contains(e.Category, f.Category) &&
			(contains(e.City, f.Location) || contains(e.Address, f.Location)) &&
			contains(e.Title, f.Name) &&
			(f.OrganizerID == "" || e.OrganizerID == f.OrganizerID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memEvents) Update(_ context.Context, e *models.Event) error {
	cur, ok := r.events[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.BookedSeats > e.AvailableSeats {
		return repository.ErrConflict
	}
	e.BookedSeats = cur.BookedSeats
	r.events[e.ID] = *e
	return nil
}

func (r memEvents) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return repository.ErrNotFound
	}
	for _, p := range r.payments {
		if p.EventID == id {
			return repository.ErrInvalidReference
		}
	}
	delete(r.events, id)
	return nil
}

func (r memEvents) IncrementBookedSeats(_ context.Context, id string, qty int) (*models.Event, error) {
	if err := r.failure("events.IncrementBookedSeats"); err != nil {
		return nil, err
	}
	e, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.BookedSeats += qty
	r.events[id] = e
	return &e, nil
}

// users

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r memUsers) Get(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) CreditBalance(_ context.Context, id string, amount models.Cents) (models.Cents, error) {
	if err := r.failure("users.CreditBalance"); err != nil {
		return 0, err
	}
	u, ok := r.users[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	u.Balance += amount
	r.users[id] = u
	return u.Balance, nil
}

// payments

type memPayments struct{ *memStore }

func (r memPayments) Create(_ context.Context, p *models.Payment) error {
	if _, ok := r.events[p.EventID]; !ok {
		return repository.ErrInvalidReference
	}
	if _, ok := r.payments[p.TransactionID]; ok {
		return repository.ErrDuplicate
	}
	p.CreatedAt = time.Now()
	r.payments[p.TransactionID] = *p
	return nil
}

func (r memPayments) GetByTransactionID(_ context.Context, txID string) (*models.Payment, error) {
	p, ok := r.payments[txID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// bookings

type memBookings struct{ *memStore }

func (r memBookings) Create(_ context.Context, b *models.Booking) error {
	if _, ok := r.bookings[b.TransactionID]; ok {
		return repository.ErrDuplicate
	}
	b.BookingDate = time.Now()
	r.bookings[b.TransactionID] = *b
	return nil
}

func (r memBookings) ListByEvent(_ context.Context, eventID string) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

// reconciliations

type memRecs struct{ *memStore }

func (r memRecs) Begin(_ context.Context, rec *models.Reconciliation) (bool, error) {
	if _, ok := r.recs[rec.TransactionID]; ok {
		return false, nil
	}
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	r.recs[rec.TransactionID] = *rec
	return true, nil
}

func (r memRecs) Get(_ context.Context, txID string) (*models.Reconciliation, error) {
	rec, ok := r.recs[txID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r memRecs) Advance(_ context.Context, txID string, from, to models.ReconciliationState) error {
	rec, ok := r.recs[txID]
	if !ok || rec.State != from || !from.CanAdvanceTo(to) {
		return repository.ErrConflict
	}
	rec.State = to
	r.recs[txID] = rec
	return nil
}

func (r memRecs) MarkOverbooked(_ context.Context, txID string) error {
	rec, ok := r.recs[txID]
	if !ok {
		return repository.ErrNotFound
	}
	rec.Overbooked = true
	r.recs[txID] = rec
	return nil
}

// reviews

type memReviews struct{ *memStore }

func (r memReviews) Create(_ context.Context, rv *models.Review) error {
	if _, ok := r.users[rv.UserID]; !ok {
		return repository.ErrInvalidReference
	}
	for _, existing := range r.reviews {
		if existing.UserID == rv.UserID && existing.EventID == rv.EventID {
			return repository.ErrDuplicate
		}
	}
	rv.CreatedAt = time.Now()
	r.reviews[rv.ID] = *rv
	return nil
}

func (r memReviews) ListByEvent(_ context.Context, eventID string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.EventID == eventID }), nil
}

func (r memReviews) ListByUser(_ context.Context, userID string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.UserID == userID }), nil
}

func (r memReviews) filter(keep func(models.Review) bool) []models.Review {
	out := make([]models.Review, 0)
	for _, id := range slices.Sorted(maps.Keys(r.reviews)) {
		rv := r.reviews[id]
		if keep(rv) {
			rv.EventTitle = r.events[rv.EventID].Title
			rv.Username = r.users[rv.UserID].Username
			out = append(out, rv)
		}
	}
	return out
}

// outbox

type memOutbox struct{ *memStore }

func (r memOutbox) Enqueue(_ context.Context, msg models.OutboxMessage) error {
	if err := r.failure("outbox.Enqueue"); err != nil {
		return err
	}
	r.outbox = append(r.outbox, msg)
	return nil
}

// checkout session cache

type memSessions struct {
	sessions map[string]models.CheckoutSession
	saveErr  error
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]models.CheckoutSession{}}
}

func (r *memSessions) Save(_ context.Context, ss *models.CheckoutSession) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions[ss.ID] = *ss
	return nil
}

func (r *memSessions) Get(_ context.Context, id string) (*models.CheckoutSession, error) {
	ss, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ss, nil
}

func (r *memSessions) ListByUser(_ context.Context, userID string) ([]models.CheckoutSession, error) {
	out := make([]models.CheckoutSession, 0)
	for _, id := range slices.Sorted(maps.Keys(r.sessions)) {
		if ss := r.sessions[id]; ss.UserID == userID {
			out = append(out, ss)
		}
	}
	return out, nil
}

// payment gateway

type fakeGateway struct {
	calls []payment.CheckoutRequest
	err   error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	id := "cs_test_" + req.EventID
	return &payment.CheckoutSession{
		ID:        id,
		URL:       "https://checkout.example/" + id,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// token issuer

type fakeTokens struct{}

func (fakeTokens) Issue(id auth.Identity) (string, error) {
	return "token-" + id.UserID, nil
}
