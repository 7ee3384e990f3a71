package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// TeacherModel is the teacher profile attached to a users row.
type TeacherModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	Bio            string         `gorm:"type:text" json:"bio"`
	Subjects       pq.StringArray `gorm:"type:text[]" json:"subjects"`
	PricePerLesson int            `gorm:"not null;default:7000" json:"price_per_lesson"` // KZT
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TeacherModel) TableName() string {
	return "teachers"
}

func (t *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Teaches reports whether the teacher covers the subject.
func (t *TeacherModel) Teaches(subject string) bool {
	for _, s := range t.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
