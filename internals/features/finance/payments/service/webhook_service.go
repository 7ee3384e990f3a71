package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dto "tutorku_backend/internals/features/finance/payments/dto"
	model "tutorku_backend/internals/features/finance/payments/model"
)

const webhookStatusSuccess = "SUCCESS"

// ComputeWebhookSignature is HMAC-SHA256 over the raw request body, hex
// encoded. The provider is configured with the same shared secret.
func ComputeWebhookSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks the X-Signature header value against the raw
// body. An unset secret rejects everything; the webhook must never run open.
func VerifyWebhookSignature(secret string, body []byte, provided string) bool {
	if secret == "" || provided == "" {
		return false
	}
	expected := ComputeWebhookSignature(secret, body)
	return hmac.Equal([]byte(expected), []byte(provided))
}

// ApplyWebhook records the provider's verdict on a pending payment. A repeat
// delivery for an already-paid payment is acknowledged without changes.
func ApplyWebhook(db *gorm.DB, payload *dto.WebhookPayload) (*model.PaymentModel, error) {
	paymentID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid order id")
	}

	var payment model.PaymentModel
	if err := db.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment")
	}
	if payment.IsPaid() {
		return &payment, nil
	}

	meta := datatypes.JSONMap{
		"webhook_status": payload.Status,
		"transaction_id": payload.TransactionID,
		"received_at":    time.Now().Format(time.RFC3339),
	}

	updates := map[string]interface{}{"meta": meta}
	if payload.Status == webhookStatusSuccess {
		now := time.Now()
		updates["status"] = model.PaymentStatusPaid
		updates["paid_at"] = &now
		if payload.TransactionID != "" {
			updates["external_id"] = payload.TransactionID
		}
		payment.Status = model.PaymentStatusPaid
		payment.PaidAt = &now
	} else {
		updates["status"] = model.PaymentStatusFailed
		payment.Status = model.PaymentStatusFailed
	}

	if err := db.Model(&model.PaymentModel{}).Where("id = ?", payment.ID).Updates(updates).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update payment")
	}
	payment.Meta = meta
	return &payment, nil
}
