package pgstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) InsertIfAbsent(ctx context.Context, u *models.User) (models.InsertResult, error) {
	database.Stamp(&u.ID, &u.CreatedAt)
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(u)
	if tx.Error != nil {
		return models.InsertResult{}, fmt.Errorf("insert user: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return models.InsertResult{}, database.ErrDuplicate
	}
	return models.Inserted(u.ID), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](ctx, r.db, "email = ?", email)
}

func (r *userRepo) List(ctx context.Context, search string) ([]models.User, error) {
	tx := r.db.WithContext(ctx).Order("created_at")
	if search != "" {
		like := "%" + search + "%"
		tx = tx.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	return find[models.User](tx)
}

func (r *userRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return find[models.User](r.db.WithContext(ctx).Where("role = ?", role))
}

func (r *userRepo) UpdateRole(ctx context.Context, email string, role models.Role) (models.UpdateResult, error) {
	return updateResult(r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("role", role))
}
