// Package pgstore implements the repositories on PostgreSQL through gorm.
package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

type conn struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

func (c conn) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c conn) Close(context.Context) error {
	err := c.db.Close()
	c.pool.Close()
	return err
}

// Open builds a pgx pool, hands it to gorm, and applies the embedded migrations
// when migrate is true.
func Open(ctx context.Context, dsn string, migrate bool, log *zap.Logger) (*database.Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	if migrate {
		if err := Migrate(ctx, sqlDB); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("database migrations applied")
	}
	log.Info("connected to PostgreSQL")

	return &database.Store{
		Conn:          conn{pool: pool, db: sqlDB},
		Users:         &userRepo{db: db},
		Sessions:      &sessionRepo{db: db},
		Materials:     &materialRepo{db: db},
		Notes:         &noteRepo{db: db},
		Bookings:      &bookingRepo{db: db},
		Reviews:       &reviewRepo{db: db, table: models.ReviewsCollection},
		LegacyReviews: &reviewRepo{db: db, table: models.LegacyReviewCollection},
		Payments:      &paymentRepo{db: db},
	}, nil
}

func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func updateResult(tx *gorm.DB) (models.UpdateResult, error) {
	if tx.Error != nil {
		return models.UpdateResult{}, tx.Error
	}
	return models.UpdateResult{Acknowledged: true, MatchedCount: tx.RowsAffected, ModifiedCount: tx.RowsAffected}, nil
}

func deleteResult(tx *gorm.DB) (models.DeleteResult, error) {
	if tx.Error != nil {
		return models.DeleteResult{}, tx.Error
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: tx.RowsAffected}, nil
}

// validID reports whether id is a canonical UUID. The id columns are UUID
// typed, so anything else can never match a row and must not reach Postgres.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

func byID[T any](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	if !validID(id) {
		return nil, database.ErrNotFound
	}
	return first[T](ctx, db, "id = ?", id)
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var row T
	tx := db.WithContext(ctx).Where(query, args...).Limit(1).Find(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, database.ErrNotFound
	}
	return &row, nil
}

func find[T any](tx *gorm.DB) ([]T, error) {
	out := make([]T, 0)
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// changes turns the non-nil pointers in fields into a gorm update map.
func changes(fields map[string]*string) map[string]any {
	out := map[string]any{}
	for k, v := range fields {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}
