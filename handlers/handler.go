package handlers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/middleware"
	"github.com/anjiri1684/study_platform/models"
	"github.com/anjiri1684/study_platform/notifications"
	"github.com/anjiri1684/study_platform/payments"
	"github.com/anjiri1684/study_platform/services"
)

var validate = validator.New()

// Handler carries everything the route handlers need. It is built once in main.
type Handler struct {
	Store    *database.Store
	Tokens   *services.TokenService
	Roles    *services.RoleService
	Uploads  *services.Uploader
	Intents  payments.IntentProvider
	PayPal   *payments.PayPalProvider
	Mailer   notifications.Mailer
	Log      *zap.Logger
	Currency string
}

// bind parses the request body into req and validates it. The returned error
// is a *fiber.Error carrying status 400.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// bindOptional is bind for endpoints whose body fields are all optional: an
// empty body leaves req at its zero value.
func bindOptional(c *fiber.Ctx, req interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return bind(c, req)
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func forbidden(c *fiber.Ctx) error {
	return message(c, fiber.StatusForbidden, "Forbidden access")
}

// isAdmin reports whether the caller's stored role is admin. An unknown user is not.
func (h *Handler) isAdmin(ctx context.Context, email string) (bool, error) {
	role, err := h.Roles.Lookup(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}

// selfOrAdmin lets a request through when the :email path value is the caller
// or the caller is an admin.
func (h *Handler) selfOrAdmin(c *fiber.Ctx, email string) (bool, error) {
	if email == middleware.Email(c) {
		return true, nil
	}
	return h.isAdmin(c.UserContext(), middleware.Email(c))
}

// ownerScope returns the owner filter for material writes: empty for admins so
// the write is not restricted, the caller email otherwise.
func (h *Handler) ownerScope(c *fiber.Ctx) (string, error) {
	email := middleware.Email(c)
	admin, err := h.isAdmin(c.UserContext(), email)
	if err != nil {
		return "", err
	}
	if admin {
		return "", nil
	}
	return email, nil
}

func (h *Handler) Root(c *fiber.Ctx) error {
	return c.SendString("Hello from Collaborative Study Platform..")
}

func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.Store.Ping(c.UserContext()); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
