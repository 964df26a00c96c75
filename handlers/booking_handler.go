package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/middleware"
	"github.com/anjiri1684/study_platform/models"
	"github.com/anjiri1684/study_platform/notifications"
)

type BookingRequest struct {
	SessionID     string `json:"sessionId" validate:"required"`
	TransactionID string `json:"transactionId"`
}

// BookSession books the caller into an approved session. Booking the same
// session twice answers 200 with a null insertedId.
func (h *Handler) BookSession(c *fiber.Ctx) error {
	var req BookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.UserContext()

	session, err := h.Store.Sessions.FindByID(ctx, req.SessionID)
	if errors.Is(err, database.ErrNotFound) {
		return message(c, fiber.StatusNotFound, "Session not found")
	}
	if err != nil {
		return err
	}
	if session.Status != models.StatusApproved {
		return message(c, fiber.StatusBadRequest, "Session is not open for booking")
	}

	booking := models.Booking{
		SessionID:     session.ID,
		SessionTitle:  session.Title,
		StudentEmail:  middleware.Email(c),
		TutorEmail:    session.Tutor.Email,
		Fee:           session.Fee,
		TransactionID: req.TransactionID,
	}
	res, err := h.Store.Bookings.InsertIfAbsent(ctx, &booking)
	if errors.Is(err, database.ErrDuplicate) {
		return c.JSON(fiber.Map{"message": "session already booked", "insertedId": nil})
	}
	if err != nil {
		return err
	}

	notifications.SendAsync(h.Mailer, h.Log, "", booking.StudentEmail,
		"Booking confirmed: "+session.Title,
		fmt.Sprintf("<h1>You're booked!</h1><p>Your place in <b>%s</b> is confirmed. Classes start on %s.</p>",
			session.Title, session.ClassStartDate.Format("02 Jan 2006")),
	)
	return c.JSON(res)
}

func (h *Handler) GetStudentBookings(c *fiber.Ctx) error {
	bookings, err := h.Store.Bookings.ListByStudent(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(bookings)
}

func (h *Handler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.Store.Bookings.FindByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, database.ErrNotFound) {
		return message(c, fiber.StatusNotFound, "Booking not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(booking)
}
