package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjiri1684/study_platform/models"
	"go.uber.org/zap"
)

func SeedAdmin(ctx context.Context, s *Store, email, name string, log *zap.Logger) error {
	if email == "" {
		log.Warn("ADMIN_EMAIL not set, skipping admin seed")
		return nil
	}

	_, err := s.Users.InsertIfAbsent(ctx, &models.User{Email: email, Name: name, Role: models.RoleAdmin})
	switch {
	case err == nil:
		log.Info("admin user seeded", zap.String("email", email))
		return nil
	case errors.Is(err, ErrDuplicate):
	default:
		return fmt.Errorf("seed admin: %w", err)
	}

	if _, err := s.Users.UpdateRole(ctx, email, models.RoleAdmin); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}
	log.Info("admin user already exists", zap.String("email", email))
	return nil
}
