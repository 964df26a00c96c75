package pgstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type noteRepo struct {
	db *gorm.DB
}

func (r *noteRepo) Insert(ctx context.Context, n *models.Note) (models.InsertResult, error) {
	database.Stamp(&n.ID, &n.CreatedAt)
	n.UpdatedAt = n.CreatedAt
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return models.InsertResult{}, fmt.Errorf("insert note: %w", err)
	}
	return models.Inserted(n.ID), nil
}

func (r *noteRepo) FindByID(ctx context.Context, id string) (*models.Note, error) {
	return byID[models.Note](ctx, r.db, id)
}

func (r *noteRepo) ListByEmail(ctx context.Context, email string) ([]models.Note, error) {
	return find[models.Note](r.db.WithContext(ctx).Where("email = ?", email).Order("created_at desc"))
}

func (r *noteRepo) scoped(ctx context.Context, id, owner string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Note{}).Where("id = ?", id)
	if owner != "" {
		tx = tx.Where("email = ?", owner)
	}
	return tx
}

func (r *noteRepo) Update(ctx context.Context, id, owner string, ch database.NoteChange) (models.UpdateResult, error) {
	if !validID(id) {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	set := changes(map[string]*string{"title": ch.Title, "description": ch.Description})
	set["updated_at"] = time.Now().UTC()
	return updateResult(r.scoped(ctx, id, owner).Updates(set))
}

func (r *noteRepo) Delete(ctx context.Context, id, owner string) (models.DeleteResult, error) {
	if !validID(id) {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	return deleteResult(r.scoped(ctx, id, owner).Delete(&models.Note{}))
}
