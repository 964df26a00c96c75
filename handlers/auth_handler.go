package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type tokenRequest struct {
	Email string `json:"email"`
}

// IssueToken signs a one-hour token for the posted email.
func (h *Handler) IssueToken(c *fiber.Ctx) error {
	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return message(c, fiber.StatusBadRequest, "Email is required")
	}

	token, err := h.Tokens.Issue(req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token})
}
