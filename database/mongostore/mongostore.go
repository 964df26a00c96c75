// Package mongostore implements the repositories on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

const (
	usersCollection     = "users"
	sessionsCollection  = "create-study-session"
	materialsCollection = "material"
	notesCollection     = "notes"
	bookingsCollection  = "booked-session"
	paymentsCollection  = "payments"
)

type conn struct {
	client *mongo.Client
}

func (c conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

func (c conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Open connects, pings the deployment and makes sure the indexes exist.
func Open(ctx context.Context, uri, dbName string, log *zap.Logger) (*database.Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	log.Info("connected to MongoDB", zap.String("database", dbName))

	return &database.Store{
		Conn:          conn{client: client},
		Users:         &userRepo{coll: db.Collection(usersCollection)},
		Sessions:      &sessionRepo{coll: db.Collection(sessionsCollection)},
		Materials:     &materialRepo{coll: db.Collection(materialsCollection), bookings: db.Collection(bookingsCollection)},
		Notes:         &noteRepo{coll: db.Collection(notesCollection)},
		Bookings:      &bookingRepo{coll: db.Collection(bookingsCollection)},
		Reviews:       &reviewRepo{coll: db.Collection(models.ReviewsCollection)},
		LegacyReviews: &reviewRepo{coll: db.Collection(models.LegacyReviewCollection)},
		Payments:      &paymentRepo{coll: db.Collection(paymentsCollection)},
	}, nil
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// users: unique email, so registration is a single insert-if-absent
	if _, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := db.Collection(bookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "studentEmail", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "studentEmail", Value: 1}}},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(sessionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "tutor.email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "classStartDate", Value: 1}}},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(materialsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}}},
		{Keys: bson.D{{Key: "tutorEmail", Value: 1}}},
	}); err != nil {
		return err
	}

	for _, name := range []string{models.ReviewsCollection, models.LegacyReviewCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "sessionId", Value: 1}},
		}); err != nil {
			return err
		}
	}
	return nil
}

func insertResult(res *mongo.InsertOneResult) models.InsertResult {
	id, _ := res.InsertedID.(string)
	return models.Inserted(id)
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	return models.UpdateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}

func deleteResult(res *mongo.DeleteResult) models.DeleteResult {
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	switch {
	case err == nil:
		return &doc, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, database.ErrNotFound
	default:
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s aggregate: %w", coll.Name(), err)
	}
	return out, nil
}

// setFields builds a $set document from the non-nil pointers in fields.
func setFields(fields map[string]*string) bson.M {
	set := bson.M{}
	for k, v := range fields {
		if v != nil {
			set[k] = *v
		}
	}
	return set
}
