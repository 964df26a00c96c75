package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/services"
)

// GenerateUploadSignature creates a secure signature for a frontend upload.
func (h *Handler) GenerateUploadSignature(c *fiber.Ctx) error {
	sig, err := h.Uploads.Signature()
	if errors.Is(err, services.ErrUploadsDisabled) {
		return message(c, fiber.StatusServiceUnavailable, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(sig)
}
