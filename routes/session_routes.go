package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/middleware"
)

func SessionRoutes(app *fiber.App, h *handlers.Handler) {
	protected := middleware.Protected(h.Tokens)
	admin := middleware.AdminRequired(h.Roles)
	tutor := middleware.TutorRequired(h.Roles)

	app.Get("/all-approved-study-session", h.GetApprovedSessions)
	app.Get("/study-session/:id", h.GetSessionDetails)

	app.Post("/create-study", protected, tutor, h.CreateSession)
	app.Get("/create-all-study/:email", protected, tutor, h.GetTutorSessions)
	app.Patch("/change-status/:id", protected, tutor, h.ChangeSessionStatus)

	app.Get("/all-study-session", protected, admin, h.GetAllSessions)
	app.Patch("/approve-session/:id", protected, admin, h.ApproveSession)
	app.Patch("/reject-session/:id", protected, admin, h.RejectSession)
	app.Delete("/delete-session/:id", protected, admin, h.DeleteSession)
}
