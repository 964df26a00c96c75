package mongostore

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type userRepo struct {
	coll *mongo.Collection
}

func (r *userRepo) InsertIfAbsent(ctx context.Context, u *models.User) (models.InsertResult, error) {
	database.Stamp(&u.ID, &u.CreatedAt)
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.InsertResult{}, database.ErrDuplicate
		}
		return models.InsertResult{}, fmt.Errorf("insert user: %w", err)
	}
	return insertResult(res), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": email})
}

func (r *userRepo) List(ctx context.Context, search string) ([]models.User, error) {
	filter := bson.M{}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		}}
	}
	return findAll[models.User](ctx, r.coll, filter)
}

func (r *userRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return findAll[models.User](ctx, r.coll, bson.M{"role": role})
}

func (r *userRepo) UpdateRole(ctx context.Context, email string, role models.Role) (models.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update role: %w", err)
	}
	return updateResult(res), nil
}
