package pgstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type sessionRepo struct {
	db *gorm.DB
}

func (r *sessionRepo) Insert(ctx context.Context, s *models.StudySession) (models.InsertResult, error) {
	database.Stamp(&s.ID, &s.CreatedAt)
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return models.InsertResult{}, fmt.Errorf("insert session: %w", err)
	}
	return models.Inserted(s.ID), nil
}

func (r *sessionRepo) FindByID(ctx context.Context, id string) (*models.StudySession, error) {
	return byID[models.StudySession](ctx, r.db, id)
}

func (r *sessionRepo) List(ctx context.Context, f database.SessionFilter) ([]models.StudySession, error) {
	tx := r.db.WithContext(ctx).Order("created_at")
	if f.TutorEmail != "" {
		tx = tx.Where("tutor_email = ?", f.TutorEmail)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if !f.ClassStartAfter.IsZero() {
		tx = tx.Where("class_start_date >= ?", f.ClassStartAfter)
	}
	if !f.ClassStartBefore.IsZero() {
		tx = tx.Where("class_start_date < ?", f.ClassStartBefore)
	}
	if f.Limit > 0 {
		tx = tx.Limit(f.Limit)
	}
	return find[models.StudySession](tx)
}

func (r *sessionRepo) Transition(ctx context.Context, id string, ch database.SessionChange) (models.UpdateResult, error) {
	if !validID(id) {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	tx := r.db.WithContext(ctx).Model(&models.StudySession{}).Where("id = ? AND status IN ?", id, ch.From)
	if ch.Owner != "" {
		tx = tx.Where("tutor_email = ?", ch.Owner)
	}
	set := changes(map[string]*string{"reason": ch.Reason, "feedback": ch.Feedback})
	set["status"] = ch.Status
	if ch.Fee != nil {
		set["fee"] = *ch.Fee
	}
	return updateResult(tx.Updates(set))
}

func (r *sessionRepo) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	if !validID(id) {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	return deleteResult(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StudySession{}))
}

func (r *sessionRepo) Details(ctx context.Context, id string) (*models.SessionDetails, error) {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := find[models.Review](r.db.WithContext(ctx).Table(models.ReviewsCollection).
		Where("session_id = ?", s.ID).Order("created_at desc"))
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	return &models.SessionDetails{StudySession: *s, Reviews: reviews}, nil
}
