// Package memstore keeps every collection in process memory. It backs local
// development (DB_DRIVER=memory) and the HTTP tests.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/anjiri1684/study_platform/database"
)

type table[T any] struct {
	mu   sync.RWMutex
	rows []T
}

func (t *table[T]) insert(row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
}

// insertUnless appends row only when no existing row satisfies clash. Check and
// write happen under one lock.
func (t *table[T]) insertUnless(row T, clash func(T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if lo.ContainsBy(t.rows, clash) {
		return false
	}
	t.rows = append(t.rows, row)
	return true
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.Find(t.rows, match)
}

func (t *table[T]) filter(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.Filter(t.rows, func(row T, _ int) bool { return match(row) })
}

// updateOne applies change to the first matching row and reports whether a row matched.
func (t *table[T]) updateOne(match func(T) bool, change func(*T)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, i, ok := lo.FindIndexOf(t.rows, match)
	if !ok {
		return false
	}
	change(&t.rows[i])
	return true
}

func (t *table[T]) deleteOne(match func(T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, i, ok := lo.FindIndexOf(t.rows, match)
	if !ok {
		return false
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	return true
}

// newestFirst orders rows by creation time, latest first, matching the
// createdAt desc sort of the database backends.
func newestFirst[T any](rows []T, createdAt func(T) time.Time) []T {
	slices.SortStableFunc(rows, func(a, b T) int { return createdAt(b).Compare(createdAt(a)) })
	return rows
}

type conn struct{}

func (conn) Ping(context.Context) error  { return nil }
func (conn) Close(context.Context) error { return nil }

func New() *database.Store {
	bookings := &bookingRepo{}
	reviews := &reviewRepo{}
	return &database.Store{
		Conn:          conn{},
		Users:         &userRepo{},
		Sessions:      &sessionRepo{reviews: reviews},
		Materials:     &materialRepo{bookings: bookings},
		Notes:         &noteRepo{},
		Bookings:      bookings,
		Reviews:       reviews,
		LegacyReviews: &reviewRepo{},
		Payments:      &paymentRepo{},
	}
}
