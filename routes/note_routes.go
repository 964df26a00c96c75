package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/middleware"
)

func NoteRoutes(app *fiber.App, h *handlers.Handler) {
	protected := middleware.Protected(h.Tokens)

	app.Post("/note", protected, h.CreateNote)
	app.Get("/notes/:email", protected, h.GetNotes)
	app.Get("/note/:id", protected, h.GetNote)
	app.Patch("/note/:id", protected, h.UpdateNote)
	app.Delete("/note/:id", protected, h.DeleteNote)
}
