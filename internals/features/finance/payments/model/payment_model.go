package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentProviderKaspi    = "kaspi"
	PaymentProviderMidtrans = "midtrans"
)

const DefaultCurrency = "KZT"

/* ===================== Model ===================== */

// PaymentModel records one charge attempt for a lesson. Meta keeps the raw
// provider payload for dispute handling.
type PaymentModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	LessonID *uuid.UUID `gorm:"type:uuid;index" json:"lesson_id,omitempty"`

	Amount   int    `gorm:"not null" json:"amount"`
	Currency string `gorm:"size:3;not null;default:'KZT'" json:"currency"`

	Provider string `gorm:"type:varchar(15);not null" json:"provider"`
	Status   string `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`

	ExternalID  string            `gorm:"size:100;index" json:"external_id,omitempty"`
	CheckoutURL string            `gorm:"type:text" json:"checkout_url,omitempty"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" json:"meta,omitempty"`

	PaidAt *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *PaymentModel) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}
