package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type materialRepo struct {
	coll     *mongo.Collection
	bookings *mongo.Collection
}

func ownerFilter(id, ownerField, owner string) bson.M {
	filter := bson.M{"_id": id}
	if owner != "" {
		filter[ownerField] = owner
	}
	return filter
}

func (r *materialRepo) Insert(ctx context.Context, m *models.Material) (models.InsertResult, error) {
	database.Stamp(&m.ID, &m.CreatedAt)
	res, err := r.coll.InsertOne(ctx, m)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert material: %w", err)
	}
	return insertResult(res), nil
}

func (r *materialRepo) FindByID(ctx context.Context, id string) (*models.Material, error) {
	return findOne[models.Material](ctx, r.coll, bson.M{"_id": id})
}

func (r *materialRepo) List(ctx context.Context, tutorEmail string) ([]models.Material, error) {
	filter := bson.M{}
	if tutorEmail != "" {
		filter["tutorEmail"] = tutorEmail
	}
	return findAll[models.Material](ctx, r.coll, filter)
}

func (r *materialRepo) Update(ctx context.Context, id, owner string, ch database.MaterialChange) (models.UpdateResult, error) {
	filter := ownerFilter(id, "tutorEmail", owner)
	set := setFields(map[string]*string{"title": ch.Title, "image": ch.Image, "link": ch.Link})
	if len(set) == 0 {
		n, err := r.coll.CountDocuments(ctx, filter)
		if err != nil {
			return models.UpdateResult{}, fmt.Errorf("count material: %w", err)
		}
		return models.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update material: %w", err)
	}
	return updateResult(res), nil
}

func (r *materialRepo) Delete(ctx context.Context, id, owner string) (models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, ownerFilter(id, "tutorEmail", owner))
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete material: %w", err)
	}
	return deleteResult(res), nil
}

// studentMaterialsPipeline runs on the bookings collection: bookings of the
// student, joined to materials by sessionId, one output row per material.
func studentMaterialsPipeline(studentEmail string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "studentEmail", Value: studentEmail}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: materialsCollection},
			{Key: "localField", Value: "sessionId"},
			{Key: "foreignField", Value: "sessionId"},
			{Key: "as", Value: "materials"},
		}}},
		{{Key: "$unwind", Value: "$materials"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$materials._id"},
			{Key: "sessionId", Value: 1},
			{Key: "sessionTitle", Value: 1},
			{Key: "title", Value: "$materials.title"},
			{Key: "image", Value: "$materials.image"},
			{Key: "link", Value: "$materials.link"},
			{Key: "tutorEmail", Value: "$materials.tutorEmail"},
		}}},
	}
}

func (r *materialRepo) ForStudent(ctx context.Context, studentEmail string) ([]models.SessionMaterial, error) {
	return aggregate[models.SessionMaterial](ctx, r.bookings, studentMaterialsPipeline(studentEmail))
}
