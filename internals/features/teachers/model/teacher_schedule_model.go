package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherScheduleModel is a weekly availability row: one weekday window per
// record, replaced wholesale by the schedule update endpoint.
type TeacherScheduleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`

	DayOfWeek int    `gorm:"not null;check:day_of_week >= 0 AND day_of_week <= 6" json:"day_of_week"`
	TimeStart string `gorm:"size:8;not null" json:"time_start"` // "09:00"
	TimeEnd   string `gorm:"size:8;not null" json:"time_end"`   // "13:00"

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TeacherScheduleModel) TableName() string {
	return "teacher_schedule"
}

func (s *TeacherScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
