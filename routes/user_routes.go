package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/middleware"
)

func UserRoutes(app *fiber.App, h *handlers.Handler) {
	protected := middleware.Protected(h.Tokens)
	admin := middleware.AdminRequired(h.Roles)

	app.Post("/users", h.RegisterUser)
	app.Get("/tutors", h.GetTutors)

	app.Get("/users", protected, admin, h.GetUsers)
	app.Get("/user/role/:email", protected, h.GetUserRole)
	app.Patch("/user/role/:email", protected, admin, h.UpdateUserRole)
}
