package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"stayhub/internal/domain"
)

// fakeStore is an in-memory stand-in for the MySQL repo. WithTx serializes
// whole transactions behind one mutex, which is the coarse-grained analogue
// of the row locks the real store takes.
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users      map[string]domain.User
	properties map[string]domain.Property
	bookings   map[string]domain.Booking
	payments   map[string]domain.Payment
	reviews    map[string]domain.Review
	messages   []domain.Message
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[string]domain.User{},
		properties: map[string]domain.Property{},
		bookings:   map[string]domain.Booking{},
		payments:   map[string]domain.Payment{},
		reviews:    map[string]domain.Review{},
	}
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// ---- users ----

func (s *fakeStore) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) GetUser(_ context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *fakeStore) SetUserVerified(_ context.Context, id string, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Verified = verified
	s.users[id] = u
	return nil
}

// ---- properties ----

func (s *fakeStore) CreateProperty(_ context.Context, p domain.Property) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = p
	return p, nil
}

func (s *fakeStore) GetProperty(_ context.Context, id string) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) GetPropertyForUpdate(ctx context.Context, id string) (domain.Property, error) {
	return s.GetProperty(ctx, id)
}

func (s *fakeStore) GetPropertyView(ctx context.Context, id string) (domain.PropertyView, error) {
	p, err := s.GetProperty(ctx, id)
	if err != nil {
		return domain.PropertyView{}, err
	}
	return domain.PropertyView{Property: p}, nil
}

func (s *fakeStore) SearchProperties(_ context.Context, q domain.PropertySearch) ([]domain.PropertyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.PropertyView
	for _, p := range s.properties {
		if p.Status == domain.PropertyActive {
			out = append(out, domain.PropertyView{Property: p})
		}
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateProperty(_ context.Context, p domain.Property) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[p.ID]; !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	s.properties[p.ID] = p
	return p, nil
}

func (s *fakeStore) DeleteProperty(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.properties, id)
	return nil
}

// ---- bookings ----

func (s *fakeStore) CreateBooking(_ context.Context, b domain.Booking) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
	return b, nil
}

func (s *fakeStore) GetBooking(_ context.Context, id string) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (s *fakeStore) GetBookingForUpdate(ctx context.Context, id string) (domain.Booking, error) {
	return s.GetBooking(ctx, id)
}

func (s *fakeStore) ListActiveBookings(_ context.Context, propertyID, excludeID string) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.PropertyID != propertyID || b.ID == excludeID || b.Status == domain.BookingCancelled {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeStore) UpdateBookingStatus(_ context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	b.Status = status
	s.bookings[id] = b
	return b, nil
}

func (s *fakeStore) ListBookingsByGuest(_ context.Context, guestID string) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) ListBookingsByHost(_ context.Context, hostID string) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if p, ok := s.properties[b.PropertyID]; ok && p.HostID == hostID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ---- payments ----

func (s *fakeStore) CreatePayment(_ context.Context, p domain.Payment) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.payments {
		if existing.BookingID == p.BookingID && existing.Active() {
			return domain.Payment{}, domain.ErrDuplicatePayment
		}
	}
	s.payments[p.ID] = p
	return p, nil
}

func (s *fakeStore) GetPayment(_ context.Context, id string) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return domain.Payment{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) GetPaymentForUpdate(ctx context.Context, id string) (domain.Payment, error) {
	return s.GetPayment(ctx, id)
}

func (s *fakeStore) ActivePaymentExists(_ context.Context, bookingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.BookingID == bookingID && p.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) UpdatePaymentStatus(_ context.Context, id string, status domain.PaymentStatus) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return domain.Payment{}, domain.ErrNotFound
	}
	p.Status = status
	s.payments[id] = p
	return p, nil
}

func (s *fakeStore) ListPaymentsByPayer(_ context.Context, payerID string) ([]domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.PayerID == payerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) ListPaymentsByHost(_ context.Context, hostID string) ([]domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Payment
	for _, p := range s.payments {
		b, ok := s.bookings[p.BookingID]
		if !ok {
			continue
		}
		if prop, ok := s.properties[b.PropertyID]; ok && prop.HostID == hostID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) HostEarnings(context.Context, string, time.Time, time.Time) ([]domain.EarningsMonth, error) {
	return nil, nil
}

// ---- reviews ----

func (s *fakeStore) CreateReview(_ context.Context, r domain.Review) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[r.ID] = r
	return r, nil
}

func (s *fakeStore) ReviewExists(_ context.Context, bookingID, reviewerID, revieweeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.BookingID == bookingID && r.ReviewerID == reviewerID && r.RevieweeID == revieweeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) ListPropertyReviews(context.Context, string) ([]domain.ReviewView, error) {
	return nil, nil
}

func (s *fakeStore) ListUserReviews(context.Context, string) ([]domain.ReviewView, error) {
	return nil, nil
}

func (s *fakeStore) PropertyReviewStats(context.Context, string) (domain.ReviewStats, error) {
	return domain.ReviewStats{}, nil
}

// ---- messages ----

func (s *fakeStore) CreateMessage(_ context.Context, m domain.Message) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return m, nil
}

func (s *fakeStore) ListConversation(_ context.Context, userID, otherID string) ([]domain.MessageView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.MessageView
	for _, m := range s.messages {
		if (m.SenderID == userID && m.ReceiverID == otherID) || (m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, domain.MessageView{Message: m})
		}
	}
	return out, nil
}

func (s *fakeStore) MarkConversationRead(_ context.Context, senderID, receiverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID {
			s.messages[i].Read = true
		}
	}
	return nil
}

// fakeCache is a JSON round-tripping in-memory cache.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	dels int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.dels++
	return nil
}

type fakePush struct {
	mu     sync.Mutex
	pushes []string // receiver IDs
}

func (f *fakePush) Push(userID string, _ any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, userID)
	return true
}
