package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/middleware"
	"github.com/anjiri1684/study_platform/models"
	"github.com/anjiri1684/study_platform/payments"
)

type PriceRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type CaptureRequest struct {
	OrderID string `json:"orderID" validate:"required"`
}

type PaymentRequest struct {
	SessionID   string  `json:"sessionId" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
	Provider    string  `json:"provider" validate:"required,oneof=stripe paypal"`
	ProviderRef string  `json:"providerRef"`
	Status      string  `json:"status"`
}

func (h *Handler) providerError(c *fiber.Ctx, err error) error {
	if errors.Is(err, payments.ErrNotConfigured) {
		return message(c, fiber.StatusServiceUnavailable, err.Error())
	}
	h.Log.Error("payment provider call failed", zap.Error(err))
	return message(c, fiber.StatusBadGateway, "Payment provider error")
}

func (h *Handler) CreatePaymentIntent(c *fiber.Ctx) error {
	var req PriceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	secret, err := h.Intents.CreateIntent(c.UserContext(), req.Price, h.Currency)
	if err != nil {
		return h.providerError(c, err)
	}
	return c.JSON(fiber.Map{"clientSecret": secret})
}

func (h *Handler) CreatePayPalOrder(c *fiber.Ctx) error {
	var req PriceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.PayPal.CreateOrder(c.UserContext(), req.Price, h.Currency)
	if err != nil {
		return h.providerError(c, err)
	}
	return c.JSON(fiber.Map{"orderID": order.ID, "status": order.Status})
}

func (h *Handler) CapturePayPalOrder(c *fiber.Ctx) error {
	var req CaptureRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.PayPal.CaptureOrder(c.UserContext(), req.OrderID)
	if err != nil {
		return h.providerError(c, err)
	}
	return c.JSON(order)
}

// RecordPayment stores a completed payment for the caller.
func (h *Handler) RecordPayment(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var payment models.Payment
	if err := copier.Copy(&payment, &req); err != nil {
		return err
	}
	payment.Email = middleware.Email(c)
	if payment.Currency == "" {
		payment.Currency = h.Currency
	}
	if payment.Status == "" {
		payment.Status = "succeeded"
	}

	res, err := h.Store.Payments.Insert(c.UserContext(), &payment)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) GetPayments(c *fiber.Ctx) error {
	email := c.Params("email")
	ok, err := h.selfOrAdmin(c, email)
	if err != nil {
		return err
	}
	if !ok {
		return forbidden(c)
	}
	list, err := h.Store.Payments.ListByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(list)
}
