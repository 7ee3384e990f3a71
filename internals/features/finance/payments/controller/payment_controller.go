package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	dto "tutorku_backend/internals/features/finance/payments/dto"
	paymentService "tutorku_backend/internals/features/finance/payments/service"
	helper "tutorku_backend/internals/helpers"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

/* =======================================================
   POST /api/u/payments
======================================================= */

func (ctrl *PaymentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	payment, err := paymentService.CreatePayment(ctrl.DB, userID, &req)
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Платеж создан", dto.FromModel(payment))
}

/* =======================================================
   GET /api/u/payments
   GET /api/u/payments/:id
======================================================= */

func (ctrl *PaymentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	payments, err := paymentService.ListPaymentsForUser(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch payments")
	}
	return helper.Success(c, "OK", dto.FromModels(payments))
}

func (ctrl *PaymentController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
	}

	payment, err := paymentService.GetPaymentForUser(ctrl.DB, paymentID, userID)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", dto.FromModel(payment))
}

/* =======================================================
   POST /api/public/payments/webhook
   Signature is checked against the raw body before anything
   else happens; an unverified delivery changes no state.
======================================================= */

func (ctrl *PaymentController) Webhook(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get("X-Signature")

	if !paymentService.VerifyWebhookSignature(configs.PaymentWebhookSecret, body, signature) {
		log.Printf("[ERROR] payment webhook rejected: bad signature")
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid signature")
	}

	var payload dto.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	payment, err := paymentService.ApplyWebhook(ctrl.DB, &payload)
	if err != nil {
		return err
	}
	log.Printf("[INFO] payment %s -> %s", payment.ID, payment.Status)
	return helper.Success(c, "OK", fiber.Map{"payment_id": payment.ID, "status": payment.Status})
}
