package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/middleware"
)

func PaymentRoutes(app *fiber.App, h *handlers.Handler) {
	protected := middleware.Protected(h.Tokens)

	app.Post("/create-payment-intent", protected, h.CreatePaymentIntent)
	app.Post("/payments", protected, h.RecordPayment)
	app.Get("/payments/:email", protected, h.GetPayments)

	paypal := app.Group("/paypal", protected)
	paypal.Post("/create-order", h.CreatePayPalOrder)
	paypal.Post("/capture-order", h.CapturePayPalOrder)
}
