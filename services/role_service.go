package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/cache"
	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

// RoleService resolves the stored role of a user, going through the role cache first.
type RoleService struct {
	users database.UserRepository
	cache cache.RoleCache
	log   *zap.Logger
}

func NewRoleService(users database.UserRepository, c cache.RoleCache, log *zap.Logger) *RoleService {
	if c == nil {
		c = cache.Nop{}
	}
	return &RoleService{users: users, cache: c, log: log}
}

// Lookup returns database.ErrNotFound when no user has the email.
func (s *RoleService) Lookup(ctx context.Context, email string) (models.Role, error) {
	role, err := s.cache.Get(ctx, email)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("role cache read failed", zap.String("email", email), zap.Error(err))
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, email, user.Role); err != nil {
		s.log.Warn("role cache write failed", zap.String("email", email), zap.Error(err))
	}
	return user.Role, nil
}

func (s *RoleService) Invalidate(ctx context.Context, email string) {
	if err := s.cache.Invalidate(ctx, email); err != nil {
		s.log.Warn("role cache invalidate failed", zap.String("email", email), zap.Error(err))
	}
}
