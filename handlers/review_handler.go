package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/middleware"
	"github.com/anjiri1684/study_platform/models"
)

type ReviewRequest struct {
	SessionID   string `json:"sessionId" validate:"required"`
	StudentName string `json:"studentName"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

func (h *Handler) createReview(c *fiber.Ctx, repo database.ReviewRepository) error {
	var req ReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var review models.Review
	if err := copier.Copy(&review, &req); err != nil {
		return err
	}
	review.StudentEmail = middleware.Email(c)

	res, err := repo.Insert(c.UserContext(), &review)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func listReviews(c *fiber.Ctx, repo database.ReviewRepository) error {
	reviews, err := repo.ListBySession(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// CreateReview writes to the reviews collection shown on session details.
func (h *Handler) CreateReview(c *fiber.Ctx) error {
	return h.createReview(c, h.Store.Reviews)
}

// CreateLegacyReview writes to the older review collection.
func (h *Handler) CreateLegacyReview(c *fiber.Ctx) error {
	return h.createReview(c, h.Store.LegacyReviews)
}

func (h *Handler) GetReviews(c *fiber.Ctx) error {
	return listReviews(c, h.Store.Reviews)
}

func (h *Handler) GetLegacyReviews(c *fiber.Ctx) error {
	return listReviews(c, h.Store.LegacyReviews)
}
