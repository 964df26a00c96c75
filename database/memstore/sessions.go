package memstore

import (
	"context"
	"slices"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type sessionRepo struct {
	table[models.StudySession]
	reviews *reviewRepo
}

func (r *sessionRepo) Insert(_ context.Context, s *models.StudySession) (models.InsertResult, error) {
	database.Stamp(&s.ID, &s.CreatedAt)
	r.insert(*s)
	return models.Inserted(s.ID), nil
}

func (r *sessionRepo) FindByID(_ context.Context, id string) (*models.StudySession, error) {
	s, ok := r.find(func(s models.StudySession) bool { return s.ID == id })
	if !ok {
		return nil, database.ErrNotFound
	}
	return &s, nil
}

func (r *sessionRepo) List(_ context.Context, f database.SessionFilter) ([]models.StudySession, error) {
	out := r.filter(func(s models.StudySession) bool {
		switch {
		case f.TutorEmail != "" && s.Tutor.Email != f.TutorEmail:
			return false
		case f.Status != "" && s.Status != f.Status:
			return false
		case !f.ClassStartAfter.IsZero() && s.ClassStartDate.Before(f.ClassStartAfter):
			return false
		case !f.ClassStartBefore.IsZero() && !s.ClassStartDate.Before(f.ClassStartBefore):
			return false
		}
		return true
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *sessionRepo) Transition(_ context.Context, id string, ch database.SessionChange) (models.UpdateResult, error) {
	res := models.UpdateResult{Acknowledged: true}
	match := func(s models.StudySession) bool {
		return s.ID == id &&
			slices.Contains(ch.From, s.Status) &&
			(ch.Owner == "" || s.Tutor.Email == ch.Owner)
	}
	r.updateOne(match, func(s *models.StudySession) {
		res.MatchedCount, res.ModifiedCount = 1, 1
		s.Status = ch.Status
		if ch.Fee != nil {
			s.Fee = *ch.Fee
		}
		if ch.Reason != nil {
			s.Reason = *ch.Reason
		}
		if ch.Feedback != nil {
			s.Feedback = *ch.Feedback
		}
	})
	return res, nil
}

func (r *sessionRepo) Delete(_ context.Context, id string) (models.DeleteResult, error) {
	res := models.DeleteResult{Acknowledged: true}
	if r.deleteOne(func(s models.StudySession) bool { return s.ID == id }) {
		res.DeletedCount = 1
	}
	return res, nil
}

func (r *sessionRepo) Details(ctx context.Context, id string) (*models.SessionDetails, error) {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, _ := r.reviews.ListBySession(ctx, s.ID)
	return &models.SessionDetails{StudySession: *s, Reviews: reviews}, nil
}
