package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/middleware"
)

func UploadRoutes(app *fiber.App, h *handlers.Handler) {
	uploads := app.Group("/uploads", middleware.Protected(h.Tokens))
	uploads.Get("/signature", h.GenerateUploadSignature)
}
