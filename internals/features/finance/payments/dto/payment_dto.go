package dto

import (
	"github.com/go-playground/validator/v10"

	model "tutorku_backend/internals/features/finance/payments/model"
)

var validate = validator.New()

/* ===================== Requests ===================== */

// CreatePaymentRequest starts a charge for a lesson. Amount is optional;
// when omitted the teacher's per-lesson price applies.
type CreatePaymentRequest struct {
	LessonID string `json:"lesson_id" validate:"required,uuid4"`
	Amount   int    `json:"amount" validate:"omitempty,min=100,max=1000000"`
	Provider string `json:"provider" validate:"omitempty,oneof=kaspi midtrans"`
}

func (r *CreatePaymentRequest) Validate() error {
	return validate.Struct(r)
}

// WebhookPayload is the provider's payment-result callback body.
type WebhookPayload struct {
	OrderID       string `json:"orderId" validate:"required,uuid4"`
	Status        string `json:"status" validate:"required"`
	TransactionID string `json:"transactionId" validate:"omitempty,max=100"`
}

func (r *WebhookPayload) Validate() error {
	return validate.Struct(r)
}

/* ===================== Responses ===================== */

type PaymentResponse struct {
	ID          string `json:"id"`
	LessonID    string `json:"lesson_id,omitempty"`
	Amount      int    `json:"amount"`
	Currency    string `json:"currency"`
	Provider    string `json:"provider"`
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url,omitempty"`
	PaidAt      string `json:"paid_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func FromModel(p *model.PaymentModel) *PaymentResponse {
	resp := &PaymentResponse{
		ID:          p.ID.String(),
		Amount:      p.Amount,
		Currency:    p.Currency,
		Provider:    p.Provider,
		Status:      p.Status,
		CheckoutURL: p.CheckoutURL,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.LessonID != nil {
		resp.LessonID = p.LessonID.String()
	}
	if p.PaidAt != nil {
		resp.PaidAt = p.PaidAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

func FromModels(payments []model.PaymentModel) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, FromModel(&payments[i]))
	}
	return out
}
