package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

type RegisterRequest struct {
	Name  string      `json:"name"`
	Email string      `json:"email" validate:"required,email"`
	Photo string      `json:"photo"`
	Role  models.Role `json:"role" validate:"omitempty,oneof=student tutor"`
}

type RoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=student tutor admin"`
}

// RegisterUser stores the user unless the email is already registered, in which
// case it answers 200 with a null insertedId.
func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := copier.Copy(&user, &req); err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	res, err := h.Store.Users.InsertIfAbsent(c.UserContext(), &user)
	if errors.Is(err, database.ErrDuplicate) {
		return c.JSON(fiber.Map{"message": "user already exist in database", "insertedId": nil})
	}
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) GetUsers(c *fiber.Ctx) error {
	users, err := h.Store.Users.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *Handler) GetTutors(c *fiber.Ctx) error {
	tutors, err := h.Store.Users.ListByRole(c.UserContext(), models.RoleTutor)
	if err != nil {
		return err
	}
	return c.JSON(tutors)
}

func (h *Handler) GetUserRole(c *fiber.Ctx) error {
	role, err := h.Roles.Lookup(c.UserContext(), c.Params("email"))
	if errors.Is(err, database.ErrNotFound) {
		return c.JSON(fiber.Map{"role": nil})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"role": role})
}

func (h *Handler) UpdateUserRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	email := c.Params("email")

	res, err := h.Store.Users.UpdateRole(c.UserContext(), email, req.Role)
	if err != nil {
		return err
	}
	h.Roles.Invalidate(c.UserContext(), email)
	h.Log.Info("user role changed", zap.String("email", email), zap.String("role", string(req.Role)))
	return c.JSON(res)
}
