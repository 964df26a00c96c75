package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/middleware"
)

func MaterialRoutes(app *fiber.App, h *handlers.Handler) {
	protected := middleware.Protected(h.Tokens)

	app.Get("/all-materials/:email", h.GetTutorMaterials)

	app.Post("/upload-material", protected, middleware.TutorRequired(h.Roles), h.UploadMaterial)
	app.Get("/all-materials", protected, middleware.AdminRequired(h.Roles), h.GetAllMaterials)
	app.Get("/material/:id", protected, h.GetMaterial)
	app.Put("/update-material/:id", protected, h.UpdateMaterial)
	app.Delete("/delete-material/:id", protected, h.DeleteMaterial)
	app.Get("/session-materials/:email", protected, h.GetStudentMaterials)
}
