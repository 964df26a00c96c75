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

type bookingRepo struct {
	coll *mongo.Collection
}

func (r *bookingRepo) InsertIfAbsent(ctx context.Context, b *models.Booking) (models.InsertResult, error) {
	database.Stamp(&b.ID, &b.CreatedAt)
	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.InsertResult{}, database.ErrDuplicate
		}
		return models.InsertResult{}, fmt.Errorf("insert booking: %w", err)
	}
	return insertResult(res), nil
}

func (r *bookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	return findOne[models.Booking](ctx, r.coll, bson.M{"_id": id})
}

func (r *bookingRepo) ListByStudent(ctx context.Context, email string) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.coll, bson.M{"studentEmail": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *bookingRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.coll, bson.M{"sessionId": sessionID})
}

type reviewRepo struct {
	coll *mongo.Collection
}

func (r *reviewRepo) Insert(ctx context.Context, rv *models.Review) (models.InsertResult, error) {
	database.Stamp(&rv.ID, &rv.CreatedAt)
	res, err := r.coll.InsertOne(ctx, rv)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert review into %s: %w", r.coll.Name(), err)
	}
	return insertResult(res), nil
}

func (r *reviewRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Review, error) {
	return findAll[models.Review](ctx, r.coll, bson.M{"sessionId": sessionID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

type paymentRepo struct {
	coll *mongo.Collection
}

func (r *paymentRepo) Insert(ctx context.Context, p *models.Payment) (models.InsertResult, error) {
	database.Stamp(&p.ID, &p.CreatedAt)
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert payment: %w", err)
	}
	return insertResult(res), nil
}

func (r *paymentRepo) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return findAll[models.Payment](ctx, r.coll, bson.M{"email": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}
