package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/middleware"
)

func BookingRoutes(app *fiber.App, h *handlers.Handler) {
	protected := middleware.Protected(h.Tokens)

	app.Post("/book-session", protected, h.BookSession)
	app.Get("/book-session/:email", protected, h.GetStudentBookings)
	app.Get("/booked-session/:id", protected, h.GetBooking)
}
