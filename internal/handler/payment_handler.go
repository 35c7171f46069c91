package handler

import (
	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
)

type paymentProcessor interface {
	CreateContactCheckout(req models.ContactCheckoutRequest) (*models.CheckoutSessionResponse, error)
	CreateTeacherPremiumCheckout(req models.TeacherPremiumCheckoutRequest) (*models.CheckoutSessionResponse, error)
	CreateStudentPremiumCheckout(req models.StudentPremiumCheckoutRequest) (*models.CheckoutSessionResponse, error)
	CheckPayment(sessionID string) (*models.PaymentCheckResponse, error)
	HandleStripeEvent(event *stripe.Event) error
}

type PaymentHandler struct {
	paymentService paymentProcessor
	webhookSecret  string
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService paymentProcessor, webhookSecret string, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		webhookSecret:  webhookSecret,
		logger:         logger,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req models.ContactCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	session, err := h.paymentService.CreateContactCheckout(req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(session)
}

func (h *PaymentHandler) CreatePremiumCheckoutSession(c *fiber.Ctx) error {
	var req models.TeacherPremiumCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	session, err := h.paymentService.CreateTeacherPremiumCheckout(req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(session)
}

func (h *PaymentHandler) CreateStudentPremiumCheckoutSession(c *fiber.Ctx) error {
	var req models.StudentPremiumCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	session, err := h.paymentService.CreateStudentPremiumCheckout(req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(session)
}

// HandleStripeWebhook is the single security boundary of the payment flow.
// A signature that does not verify against the raw body gets a 400 and no
// state is touched. Once the event is verified the response is always 200,
// otherwise Stripe keeps retrying deliveries that cannot do anything new.
func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Webhook signature verification failed"))
	}

	if err := h.paymentService.HandleStripeEvent(&event); err != nil {
		h.logger.Error("webhook event processing failed",
			zap.String("event_id", event.ID), zap.Error(err))
	}

	return c.JSON(fiber.Map{"received": true})
}

func (h *PaymentHandler) CheckPayment(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	status, err := h.paymentService.CheckPayment(sessionID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(status)
}
