package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type sessionRepo struct {
	coll *mongo.Collection
}

func (r *sessionRepo) Insert(ctx context.Context, s *models.StudySession) (models.InsertResult, error) {
	database.Stamp(&s.ID, &s.CreatedAt)
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert session: %w", err)
	}
	return insertResult(res), nil
}

func (r *sessionRepo) FindByID(ctx context.Context, id string) (*models.StudySession, error) {
	return findOne[models.StudySession](ctx, r.coll, bson.M{"_id": id})
}

func sessionFilter(f database.SessionFilter) bson.M {
	filter := bson.M{}
	if f.TutorEmail != "" {
		filter["tutor.email"] = f.TutorEmail
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	start := bson.M{}
	if !f.ClassStartAfter.IsZero() {
		start["$gte"] = f.ClassStartAfter
	}
	if !f.ClassStartBefore.IsZero() {
		start["$lt"] = f.ClassStartBefore
	}
	if len(start) > 0 {
		filter["classStartDate"] = start
	}
	return filter
}

func (r *sessionRepo) List(ctx context.Context, f database.SessionFilter) ([]models.StudySession, error) {
	opts := options.Find()
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return findAll[models.StudySession](ctx, r.coll, sessionFilter(f), opts)
}

func transitionUpdate(id string, ch database.SessionChange) (filter, update bson.M) {
	filter = bson.M{"_id": id, "status": bson.M{"$in": ch.From}}
	if ch.Owner != "" {
		filter["tutor.email"] = ch.Owner
	}
	set := bson.M{"status": ch.Status}
	if ch.Fee != nil {
		set["fee"] = *ch.Fee
	}
	for k, v := range setFields(map[string]*string{"reason": ch.Reason, "feedback": ch.Feedback}) {
		set[k] = v
	}
	return filter, bson.M{"$set": set}
}

func (r *sessionRepo) Transition(ctx context.Context, id string, ch database.SessionChange) (models.UpdateResult, error) {
	filter, update := transitionUpdate(id, ch)
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("transition session: %w", err)
	}
	return updateResult(res), nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete session: %w", err)
	}
	return deleteResult(res), nil
}

// detailsPipeline matches one session and left-joins the reviews whose sessionId,
// compared as a string, equals the session id.
func detailsPipeline(id string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: models.ReviewsCollection},
			{Key: "let", Value: bson.D{{Key: "sid", Value: bson.D{{Key: "$toString", Value: "$_id"}}}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{bson.D{{Key: "$toString", Value: "$sessionId"}}, "$$sid"}},
				}}}}},
			}},
			{Key: "as", Value: "reviews"},
		}}},
	}
}

func (r *sessionRepo) Details(ctx context.Context, id string) (*models.SessionDetails, error) {
	rows, err := aggregate[models.SessionDetails](ctx, r.coll, detailsPipeline(id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, database.ErrNotFound
	}
	return &rows[0], nil
}
