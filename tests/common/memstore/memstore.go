//go:build unit || e2e

// Package memstore is an in-memory unit of work for usecase tests.
// Writes are staged per transaction and applied only when fn succeeds.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/domain/notification"
	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/infra/db"
	"localscout-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu            sync.Mutex
	bookings      map[uuid.UUID]booking.Record
	notifications map[uuid.UUID]notificationRow
	services      map[uuid.UUID]shared.ServiceSnapshot
	users         map[uuid.UUID]user.Profile

	// NotificationErr, when set, fails every notification insert.
	NotificationErr error
	// BeforeUpdate runs inside UpdateStatus before the status predicate is
	// checked and may change the committed record to simulate a concurrent writer.
	BeforeUpdate func(committed *booking.Record)
}

type notificationRow struct {
	id        uuid.UUID
	userID    uuid.UUID
	message   string
	isRead    bool
	createdAt time.Time
}

func (r notificationRow) toDomain() *notification.Notification {
	return notification.Reconstruct(r.id, r.userID, r.message, r.isRead, r.createdAt)
}

func New() *Store {
	return &Store{
		bookings:      make(map[uuid.UUID]booking.Record),
		notifications: make(map[uuid.UUID]notificationRow),
		services:      make(map[uuid.UUID]shared.ServiceSnapshot),
		users:         make(map[uuid.UUID]user.Profile),
	}
}

// Seeding helpers.

func (s *Store) PutService(svc shared.ServiceSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *Store) PutUser(p user.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[p.ID] = p
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = b.Record()
}

// Inspection helpers.

func (s *Store) Booking(id uuid.UUID) (booking.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.bookings[id]
	return rec, ok
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// NotificationsFor returns every notification of userID, oldest first.
func (s *Store) NotificationsFor(userID uuid.UUID) []*notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*notification.Notification
	for _, row := range s.notifications {
		if row.userID == userID {
			out = append(out, row.toDomain())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

func (s *Store) UnreadFor(userID uuid.UUID) []*notification.Notification {
	var unread []*notification.Notification
	for _, n := range s.NotificationsFor(userID) {
		if !n.IsRead() {
			unread = append(unread, n)
		}
	}
	return unread
}

// shared.UnitOfWork

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:         s,
		bookings:      make(map[uuid.UUID]booking.Record),
		notifications: make(map[uuid.UUID]notificationRow),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, rec := range tx.bookings {
		s.bookings[id] = rec
	}
	for id, row := range tx.notifications {
		s.notifications[id] = row
	}
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{store: s, lock: true}
}

type memTx struct {
	store         *Store
	bookings      map[uuid.UUID]booking.Record
	notifications map[uuid.UUID]notificationRow
}

func (t *memTx) Bookings() shared.BookingRepository           { return (*bookingRepo)(t) }
func (t *memTx) Notifications() shared.NotificationRepository { return (*notificationRepo)(t) }
func (t *memTx) Reads() shared.CommandReads                   { return &reads{store: t.store, tx: t} }
func (t *memTx) DB() db.DBTX                                  { return nil }

type bookingRepo memTx

func (r *bookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if _, exists := r.store.bookings[b.ID()]; exists {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "booking exists", nil)
	}
	r.bookings[b.ID()] = b.Record()
	return nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, b *booking.Booking, expected booking.Status) error {
	current, ok := r.bookings[b.ID()]
	if !ok {
		current, ok = r.store.bookings[b.ID()]
	}
	if !ok {
		return infra.WrapRepoErr(infra.KindConflict, "booking is gone", nil)
	}
	if r.store.BeforeUpdate != nil {
		r.store.BeforeUpdate(&current)
		r.store.bookings[b.ID()] = current
	}
	if current.Status != expected {
		return infra.WrapRepoErr(infra.KindConflict, "booking is no longer "+expected.String(), nil)
	}
	r.bookings[b.ID()] = b.Record()
	return nil
}

type notificationRepo memTx

func (r *notificationRepo) Create(_ context.Context, _ db.DBTX, n *notification.Notification) error {
	if r.store.NotificationErr != nil {
		return r.store.NotificationErr
	}
	r.notifications[n.ID()] = notificationRow{
		id:        n.ID(),
		userID:    n.UserID(),
		message:   n.Message(),
		isRead:    n.IsRead(),
		createdAt: n.CreatedAt(),
	}
	return nil
}

func (r *notificationRepo) MarkRead(_ context.Context, _ db.DBTX, id, userID uuid.UUID) error {
	row, ok := r.notifications[id]
	if !ok {
		row, ok = r.store.notifications[id]
	}
	if !ok || row.userID != userID {
		return infra.WrapRepoErr(infra.KindNotFound, "notification not found", nil)
	}
	row.isRead = true
	r.notifications[id] = row
	return nil
}

type reads struct {
	store *Store
	tx    *memTx
	lock  bool
}

func (r *reads) guard() func() {
	if !r.lock {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *reads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	defer r.guard()()
	if r.tx != nil {
		if rec, ok := r.tx.bookings[id]; ok {
			return booking.Reconstruct(rec), nil
		}
	}
	rec, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", nil)
	}
	return booking.Reconstruct(rec), nil
}

func (r *reads) ServiceByID(_ context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	defer r.guard()()
	svc, ok := r.store.services[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "service not found", nil)
	}
	return &svc, nil
}

func (r *reads) UserByID(_ context.Context, id uuid.UUID) (*user.Profile, error) {
	defer r.guard()()
	p, ok := r.store.users[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", nil)
	}
	return &p, nil
}

func (r *reads) NotificationByID(_ context.Context, id uuid.UUID) (*notification.Notification, error) {
	defer r.guard()()
	if r.tx != nil {
		if row, ok := r.tx.notifications[id]; ok {
			return row.toDomain(), nil
		}
	}
	row, ok := r.store.notifications[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "notification not found", nil)
	}
	return row.toDomain(), nil
}
