package pgstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type materialRepo struct {
	db *gorm.DB
}

func (r *materialRepo) Insert(ctx context.Context, m *models.Material) (models.InsertResult, error) {
	database.Stamp(&m.ID, &m.CreatedAt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return models.InsertResult{}, fmt.Errorf("insert material: %w", err)
	}
	return models.Inserted(m.ID), nil
}

func (r *materialRepo) FindByID(ctx context.Context, id string) (*models.Material, error) {
	return byID[models.Material](ctx, r.db, id)
}

func (r *materialRepo) List(ctx context.Context, tutorEmail string) ([]models.Material, error) {
	tx := r.db.WithContext(ctx).Order("created_at")
	if tutorEmail != "" {
		tx = tx.Where("tutor_email = ?", tutorEmail)
	}
	return find[models.Material](tx)
}

func (r *materialRepo) scoped(ctx context.Context, id, owner string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Material{}).Where("id = ?", id)
	if owner != "" {
		tx = tx.Where("tutor_email = ?", owner)
	}
	return tx
}

func (r *materialRepo) Update(ctx context.Context, id, owner string, ch database.MaterialChange) (models.UpdateResult, error) {
	if !validID(id) {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	set := changes(map[string]*string{"title": ch.Title, "image": ch.Image, "link": ch.Link})
	if len(set) == 0 {
		var n int64
		if err := r.scoped(ctx, id, owner).Count(&n).Error; err != nil {
			return models.UpdateResult{}, err
		}
		return models.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}
	return updateResult(r.scoped(ctx, id, owner).Updates(set))
}

func (r *materialRepo) Delete(ctx context.Context, id, owner string) (models.DeleteResult, error) {
	if !validID(id) {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	return deleteResult(r.scoped(ctx, id, owner).Delete(&models.Material{}))
}

func (r *materialRepo) ForStudent(ctx context.Context, studentEmail string) ([]models.SessionMaterial, error) {
	rows := make([]models.SessionMaterial, 0)
	err := r.db.WithContext(ctx).
		Table("bookings AS b").
		Select("m.id AS id, b.session_id, b.session_title, m.title, m.image, m.link, m.tutor_email").
		Joins("JOIN materials AS m ON m.session_id = b.session_id").
		Where("b.student_email = ?", studentEmail).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("student materials: %w", err)
	}
	return rows, nil
}
