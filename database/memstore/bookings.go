package memstore

import (
	"context"
	"time"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type bookingRepo struct {
	table[models.Booking]
}

func (r *bookingRepo) InsertIfAbsent(_ context.Context, b *models.Booking) (models.InsertResult, error) {
	database.Stamp(&b.ID, &b.CreatedAt)
	clash := func(existing models.Booking) bool {
		return existing.SessionID == b.SessionID && existing.StudentEmail == b.StudentEmail
	}
	if !r.insertUnless(*b, clash) {
		return models.InsertResult{}, database.ErrDuplicate
	}
	return models.Inserted(b.ID), nil
}

func (r *bookingRepo) FindByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := r.find(func(b models.Booking) bool { return b.ID == id })
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (r *bookingRepo) ListByStudent(_ context.Context, email string) ([]models.Booking, error) {
	rows := r.filter(func(b models.Booking) bool { return b.StudentEmail == email })
	return newestFirst(rows, func(b models.Booking) time.Time { return b.CreatedAt }), nil
}

func (r *bookingRepo) ListBySession(_ context.Context, sessionID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.SessionID == sessionID }), nil
}

type reviewRepo struct {
	table[models.Review]
}

func (r *reviewRepo) Insert(_ context.Context, rv *models.Review) (models.InsertResult, error) {
	database.Stamp(&rv.ID, &rv.CreatedAt)
	r.insert(*rv)
	return models.Inserted(rv.ID), nil
}

func (r *reviewRepo) ListBySession(_ context.Context, sessionID string) ([]models.Review, error) {
	rows := r.filter(func(rv models.Review) bool { return rv.SessionID == sessionID })
	return newestFirst(rows, func(rv models.Review) time.Time { return rv.CreatedAt }), nil
}

type paymentRepo struct {
	table[models.Payment]
}

func (r *paymentRepo) Insert(_ context.Context, p *models.Payment) (models.InsertResult, error) {
	database.Stamp(&p.ID, &p.CreatedAt)
	r.insert(*p)
	return models.Inserted(p.ID), nil
}

func (r *paymentRepo) ListByEmail(_ context.Context, email string) ([]models.Payment, error) {
	rows := r.filter(func(p models.Payment) bool { return p.Email == email })
	return newestFirst(rows, func(p models.Payment) time.Time { return p.CreatedAt }), nil
}
