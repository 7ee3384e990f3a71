package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the users table. Students, teachers and admins share
// it; teacher-specific data lives in the teachers table.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Phone    string    `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email    *string   `gorm:"size:255" json:"email,omitempty"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"type:varchar(20);not null;default:'student'" json:"role"`

	// Students only
	Grade *int `gorm:"check:grade IS NULL OR (grade >= 1 AND grade <= 11)" json:"grade,omitempty"`

	// Once true, never reset: the single free trial has been consumed.
	HasTrialLesson bool `gorm:"not null;default:false" json:"has_trial_lesson"`

	PhoneVerified bool `gorm:"not null;default:false" json:"phone_verified"`
	IsActive      bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns the uuid app-side so Postgres and SQLite behave the same.
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *UserModel) IsStudent() bool { return u.Role == "student" }
func (u *UserModel) IsTeacher() bool { return u.Role == "teacher" }
func (u *UserModel) IsAdmin() bool   { return u.Role == "admin" }
