package memstore

import (
	"context"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type materialRepo struct {
	table[models.Material]
	bookings *bookingRepo
}

func (r *materialRepo) Insert(_ context.Context, m *models.Material) (models.InsertResult, error) {
	database.Stamp(&m.ID, &m.CreatedAt)
	r.insert(*m)
	return models.Inserted(m.ID), nil
}

func (r *materialRepo) FindByID(_ context.Context, id string) (*models.Material, error) {
	m, ok := r.find(func(m models.Material) bool { return m.ID == id })
	if !ok {
		return nil, database.ErrNotFound
	}
	return &m, nil
}

func (r *materialRepo) List(_ context.Context, tutorEmail string) ([]models.Material, error) {
	return r.filter(func(m models.Material) bool {
		return tutorEmail == "" || m.TutorEmail == tutorEmail
	}), nil
}

func owned(id, owner string) func(models.Material) bool {
	return func(m models.Material) bool {
		return m.ID == id && (owner == "" || m.TutorEmail == owner)
	}
}

func (r *materialRepo) Update(_ context.Context, id, owner string, ch database.MaterialChange) (models.UpdateResult, error) {
	res := models.UpdateResult{Acknowledged: true}
	r.updateOne(owned(id, owner), func(m *models.Material) {
		res.MatchedCount = 1
		before := *m
		if ch.Title != nil {
			m.Title = *ch.Title
		}
		if ch.Image != nil {
			m.Image = *ch.Image
		}
		if ch.Link != nil {
			m.Link = *ch.Link
		}
		if before != *m {
			res.ModifiedCount = 1
		}
	})
	return res, nil
}

func (r *materialRepo) Delete(_ context.Context, id, owner string) (models.DeleteResult, error) {
	res := models.DeleteResult{Acknowledged: true}
	if r.deleteOne(owned(id, owner)) {
		res.DeletedCount = 1
	}
	return res, nil
}

func (r *materialRepo) ForStudent(ctx context.Context, studentEmail string) ([]models.SessionMaterial, error) {
	bookings, _ := r.bookings.ListByStudent(ctx, studentEmail)
	rows := make([]models.SessionMaterial, 0)
	for _, b := range bookings {
		for _, m := range r.filter(func(m models.Material) bool { return m.SessionID == b.SessionID }) {
			rows = append(rows, models.SessionMaterial{
				ID:           m.ID,
				SessionID:    b.SessionID,
				SessionTitle: b.SessionTitle,
				Title:        m.Title,
				Image:        m.Image,
				Link:         m.Link,
				TutorEmail:   m.TutorEmail,
			})
		}
	}
	return rows, nil
}
