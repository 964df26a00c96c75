package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type noteRepo struct {
	coll *mongo.Collection
}

func (r *noteRepo) Insert(ctx context.Context, n *models.Note) (models.InsertResult, error) {
	database.Stamp(&n.ID, &n.CreatedAt)
	n.UpdatedAt = n.CreatedAt
	res, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert note: %w", err)
	}
	return insertResult(res), nil
}

func (r *noteRepo) FindByID(ctx context.Context, id string) (*models.Note, error) {
	return findOne[models.Note](ctx, r.coll, bson.M{"_id": id})
}

func (r *noteRepo) ListByEmail(ctx context.Context, email string) ([]models.Note, error) {
	return findAll[models.Note](ctx, r.coll, bson.M{"email": email})
}

func (r *noteRepo) Update(ctx context.Context, id, owner string, ch database.NoteChange) (models.UpdateResult, error) {
	set := setFields(map[string]*string{"title": ch.Title, "description": ch.Description})
	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, ownerFilter(id, "email", owner), bson.M{"$set": set})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update note: %w", err)
	}
	return updateResult(res), nil
}

func (r *noteRepo) Delete(ctx context.Context, id, owner string) (models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, ownerFilter(id, "email", owner))
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete note: %w", err)
	}
	return deleteResult(res), nil
}
