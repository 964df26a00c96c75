package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/middleware"
)

func ReviewRoutes(app *fiber.App, h *handlers.Handler) {
	protected := middleware.Protected(h.Tokens)

	app.Get("/reviews/:sessionId", h.GetReviews)
	app.Get("/review/:sessionId", h.GetLegacyReviews)
	app.Post("/reviews", protected, h.CreateReview)
	app.Post("/review", protected, h.CreateLegacyReview)
}
