package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationCodeModel holds one-time SMS codes for phone verification.
type VerificationCodeModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Phone     string     `gorm:"size:20;not null;index" json:"phone"`
	Code      string     `gorm:"size:8;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (VerificationCodeModel) TableName() string {
	return "verification_codes"
}

func (v *VerificationCodeModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v *VerificationCodeModel) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
