package pgstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type bookingRepo struct {
	db *gorm.DB
}

func (r *bookingRepo) InsertIfAbsent(ctx context.Context, b *models.Booking) (models.InsertResult, error) {
	database.Stamp(&b.ID, &b.CreatedAt)
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "student_email"}},
		DoNothing: true,
	}).Create(b)
	if tx.Error != nil {
		return models.InsertResult{}, fmt.Errorf("insert booking: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return models.InsertResult{}, database.ErrDuplicate
	}
	return models.Inserted(b.ID), nil
}

func (r *bookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	return byID[models.Booking](ctx, r.db, id)
}

func (r *bookingRepo) ListByStudent(ctx context.Context, email string) ([]models.Booking, error) {
	return find[models.Booking](r.db.WithContext(ctx).Where("student_email = ?", email).Order("created_at desc"))
}

func (r *bookingRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Booking, error) {
	return find[models.Booking](r.db.WithContext(ctx).Where("session_id = ?", sessionID))
}

// reviewRepo serves both review tables; table picks which one.
type reviewRepo struct {
	db    *gorm.DB
	table string
}

func (r *reviewRepo) Insert(ctx context.Context, rv *models.Review) (models.InsertResult, error) {
	database.Stamp(&rv.ID, &rv.CreatedAt)
	if err := r.db.WithContext(ctx).Table(r.table).Create(rv).Error; err != nil {
		return models.InsertResult{}, fmt.Errorf("insert review into %s: %w", r.table, err)
	}
	return models.Inserted(rv.ID), nil
}

func (r *reviewRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Review, error) {
	return find[models.Review](r.db.WithContext(ctx).Table(r.table).Where("session_id = ?", sessionID).Order("created_at desc"))
}

type paymentRepo struct {
	db *gorm.DB
}

func (r *paymentRepo) Insert(ctx context.Context, p *models.Payment) (models.InsertResult, error) {
	database.Stamp(&p.ID, &p.CreatedAt)
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return models.InsertResult{}, fmt.Errorf("insert payment: %w", err)
	}
	return models.Inserted(p.ID), nil
}

func (r *paymentRepo) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return find[models.Payment](r.db.WithContext(ctx).Where("email = ?", email).Order("created_at desc"))
}
