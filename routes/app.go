package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/handlers"
)

// NewApp builds the fiber application with every route group registered.
func NewApp(h *handlers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Collaborative Study Platform",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		BodyLimit:     10 * 1024 * 1024,
		ErrorHandler:  errorHandler(h.Log),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	PublicRoutes(app, h)
	UserRoutes(app, h)
	SessionRoutes(app, h)
	MaterialRoutes(app, h)
	NoteRoutes(app, h)
	BookingRoutes(app, h)
	ReviewRoutes(app, h)
	PaymentRoutes(app, h)
	UploadRoutes(app, h)

	return app
}

// errorHandler answers *fiber.Error values with their own code and message.
// Anything else is logged and reported as a generic 500.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}
		log.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
