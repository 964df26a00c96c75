// Package cache keeps recently resolved user roles so the role gates do not
// read the user store on every request.
package cache

import (
	"context"
	"errors"

	"github.com/anjiri1684/study_platform/models"
)

// ErrMiss is returned by Get when the email has no live entry.
var ErrMiss = errors.New("cache: miss")

type RoleCache interface {
	Get(ctx context.Context, email string) (models.Role, error)
	Set(ctx context.Context, email string, role models.Role) error
	Invalidate(ctx context.Context, email string) error
}

// Nop never stores anything; every Get misses.
type Nop struct{}

func (Nop) Get(context.Context, string) (models.Role, error) { return "", ErrMiss }
func (Nop) Set(context.Context, string, models.Role) error   { return nil }
func (Nop) Invalidate(context.Context, string) error         { return nil }
