package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/middleware"
	"github.com/anjiri1684/study_platform/models"
	"github.com/anjiri1684/study_platform/services"
)

type MaterialRequest struct {
	Title     string `json:"title" form:"title" validate:"required"`
	SessionID string `json:"sessionId" form:"sessionId" validate:"required"`
	Image     string `json:"image" form:"image"`
	Link      string `json:"link" form:"link" validate:"omitempty,url"`
}

type UpdateMaterialRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1"`
	Image *string `json:"image"`
	Link  *string `json:"link" validate:"omitempty,url"`
}

// UploadMaterial accepts JSON, or multipart form data with an optional "image"
// file that is stored on Cloudinary.
func (h *Handler) UploadMaterial(c *fiber.Ctx) error {
	var req MaterialRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	var material models.Material
	if err := copier.Copy(&material, &req); err != nil {
		return err
	}
	material.ID = database.NewID()
	material.TutorEmail = middleware.Email(c)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if file, err := c.FormFile("image"); err == nil {
			url, err := h.Uploads.Upload(c.UserContext(), file, "material_"+material.ID)
			if errors.Is(err, services.ErrUploadsDisabled) {
				return message(c, fiber.StatusServiceUnavailable, err.Error())
			}
			if err != nil {
				h.Log.Error("material image upload failed", zap.Error(err))
				return message(c, fiber.StatusBadGateway, "Failed to upload file")
			}
			material.Image = url
		}
	}

	res, err := h.Store.Materials.Insert(c.UserContext(), &material)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) GetTutorMaterials(c *fiber.Ctx) error {
	materials, err := h.Store.Materials.List(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(materials)
}

func (h *Handler) GetAllMaterials(c *fiber.Ctx) error {
	materials, err := h.Store.Materials.List(c.UserContext(), "")
	if err != nil {
		return err
	}
	return c.JSON(materials)
}

func (h *Handler) GetMaterial(c *fiber.Ctx) error {
	material, err := h.Store.Materials.FindByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, database.ErrNotFound) {
		return message(c, fiber.StatusNotFound, "Material not found")
	}
	if err != nil {
		return err
	}
	owner, err := h.ownerScope(c)
	if err != nil {
		return err
	}
	if owner != "" && owner != material.TutorEmail {
		return forbidden(c)
	}
	return c.JSON(material)
}

// UpdateMaterial changes a material owned by the caller; admins may change any.
func (h *Handler) UpdateMaterial(c *fiber.Ctx) error {
	var req UpdateMaterialRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	owner, err := h.ownerScope(c)
	if err != nil {
		return err
	}
	res, err := h.Store.Materials.Update(c.UserContext(), c.Params("id"), owner, database.MaterialChange{
		Title: req.Title,
		Image: req.Image,
		Link:  req.Link,
	})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) DeleteMaterial(c *fiber.Ctx) error {
	owner, err := h.ownerScope(c)
	if err != nil {
		return err
	}
	res, err := h.Store.Materials.Delete(c.UserContext(), c.Params("id"), owner)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// GetStudentMaterials lists the materials of every session the student booked.
func (h *Handler) GetStudentMaterials(c *fiber.Ctx) error {
	rows, err := h.Store.Materials.ForStudent(c.UserContext(), c.Params("email"))
	if err != nil {
		h.Log.Error("student materials lookup failed", zap.String("email", c.Params("email")), zap.Error(err))
		return message(c, fiber.StatusInternalServerError, "Failed to fetch materials")
	}
	if len(rows) == 0 {
		return message(c, fiber.StatusNotFound, "No materials found for this student")
	}
	return c.JSON(rows)
}
