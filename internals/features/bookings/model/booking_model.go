package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
)

const (
	BookingTypeTrial = "trial"
	BookingTypePaid  = "paid"
)

/* ===================== Model ===================== */

// BookingModel is an unconfirmed lesson request awaiting a teacher decision.
// Anonymous landing-form submissions have no UserID.
type BookingModel struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`

	StudentName  string `gorm:"size:100;not null" json:"student_name"`
	StudentPhone string `gorm:"size:20;not null" json:"student_phone"`
	Grade        *int   `json:"grade,omitempty"`

	Subject string `gorm:"size:30;not null;index:idx_bookings_date_subject,priority:2" json:"subject"`
	Date    string `gorm:"size:10;not null;index:idx_bookings_date_subject,priority:1" json:"date"` // YYYY-MM-DD
	Time    string `gorm:"size:5;not null" json:"time"`                                             // slot start, "14:00"

	ContactMethod string `gorm:"size:20" json:"contact_method"`
	Comments      string `gorm:"type:text" json:"comments"`

	Type   string `gorm:"type:varchar(10);not null;default:'trial'" json:"type"`
	Status string `gorm:"type:varchar(15);not null;default:'pending';index" json:"status"`

	// Set by the teacher decision
	TeacherID *uuid.UUID `gorm:"type:uuid" json:"teacher_id,omitempty"`
	Message   string     `gorm:"type:text" json:"message,omitempty"` // reject reason

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

func (b *BookingModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *BookingModel) IsPending() bool {
	return b.Status == BookingStatusPending
}

// BlockingStatuses are the booking states that occupy a time slot.
var BlockingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}
