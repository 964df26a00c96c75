package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
)

func PublicRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)
	app.Post("/jwt", h.IssueToken)
}
