package memstore

import (
	"context"
	"strings"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type userRepo struct {
	table[models.User]
}

func (r *userRepo) InsertIfAbsent(_ context.Context, u *models.User) (models.InsertResult, error) {
	database.Stamp(&u.ID, &u.CreatedAt)
	if !r.insertUnless(*u, func(existing models.User) bool { return existing.Email == u.Email }) {
		return models.InsertResult{}, database.ErrDuplicate
	}
	return models.Inserted(u.ID), nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.find(func(u models.User) bool { return u.Email == email })
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) List(_ context.Context, search string) ([]models.User, error) {
	search = strings.ToLower(search)
	return r.filter(func(u models.User) bool {
		return search == "" ||
			strings.Contains(strings.ToLower(u.Name), search) ||
			strings.Contains(strings.ToLower(u.Email), search)
	}), nil
}

func (r *userRepo) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	return r.filter(func(u models.User) bool { return u.Role == role }), nil
}

func (r *userRepo) UpdateRole(_ context.Context, email string, role models.Role) (models.UpdateResult, error) {
	res := models.UpdateResult{Acknowledged: true}
	r.updateOne(func(u models.User) bool { return u.Email == email }, func(u *models.User) {
		res.MatchedCount = 1
		if u.Role != role {
			u.Role = role
			res.ModifiedCount = 1
		}
	})
	return res, nil
}
