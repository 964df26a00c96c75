package memstore

import (
	"context"
	"time"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type noteRepo struct {
	table[models.Note]
}

func (r *noteRepo) Insert(_ context.Context, n *models.Note) (models.InsertResult, error) {
	database.Stamp(&n.ID, &n.CreatedAt)
	n.UpdatedAt = n.CreatedAt
	r.insert(*n)
	return models.Inserted(n.ID), nil
}

func (r *noteRepo) FindByID(_ context.Context, id string) (*models.Note, error) {
	n, ok := r.find(func(n models.Note) bool { return n.ID == id })
	if !ok {
		return nil, database.ErrNotFound
	}
	return &n, nil
}

func (r *noteRepo) ListByEmail(_ context.Context, email string) ([]models.Note, error) {
	rows := r.filter(func(n models.Note) bool { return n.Email == email })
	return newestFirst(rows, func(n models.Note) time.Time { return n.CreatedAt }), nil
}

func ownedNote(id, owner string) func(models.Note) bool {
	return func(n models.Note) bool { return n.ID == id && (owner == "" || n.Email == owner) }
}

func (r *noteRepo) Update(_ context.Context, id, owner string, ch database.NoteChange) (models.UpdateResult, error) {
	res := models.UpdateResult{Acknowledged: true}
	r.updateOne(ownedNote(id, owner), func(n *models.Note) {
		res.MatchedCount, res.ModifiedCount = 1, 1
		if ch.Title != nil {
			n.Title = *ch.Title
		}
		if ch.Description != nil {
			n.Description = *ch.Description
		}
		n.UpdatedAt = time.Now().UTC()
	})
	return res, nil
}

func (r *noteRepo) Delete(_ context.Context, id, owner string) (models.DeleteResult, error) {
	res := models.DeleteResult{Acknowledged: true}
	if r.deleteOne(ownedNote(id, owner)) {
		res.DeletedCount = 1
	}
	return res, nil
}
