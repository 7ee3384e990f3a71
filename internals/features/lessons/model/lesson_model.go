package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	LessonStatusScheduled  = "scheduled"
	LessonStatusInProgress = "in_progress"
	LessonStatusCompleted  = "completed"
	LessonStatusCanceled   = "canceled"
)

const (
	LessonTypeTrial = "trial"
	LessonTypePaid  = "paid"
)

/* ===================== Model ===================== */

// LessonModel is a confirmed teaching session created exactly once, when a
// booking is accepted. TeacherID references the teacher's users row.
type LessonModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;index;not null" json:"student_id"`
	TeacherID uuid.UUID `gorm:"type:uuid;index;not null" json:"teacher_id"`

	Subject string `gorm:"size:30;not null;index:idx_lessons_date_subject,priority:2" json:"subject"`
	Date    string `gorm:"size:10;not null;index:idx_lessons_date_subject,priority:1" json:"date"` // YYYY-MM-DD
	Time    string `gorm:"size:5;not null" json:"time"`                                            // slot start, kept for compatibility

	TimeStart string `gorm:"size:8;not null" json:"time_start"` // "14:00:00"
	TimeEnd   string `gorm:"size:8;not null" json:"time_end"`   // "15:00:00"

	Type   string `gorm:"type:varchar(10);not null" json:"type"`
	Status string `gorm:"type:varchar(15);not null;default:'scheduled';index" json:"status"`

	// Opaque conferencing room identifier the lesson page hands to the embed.
	MeetingRoom string `gorm:"size:120;not null" json:"meeting_room"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LessonModel) TableName() string {
	return "lessons"
}

func (l *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *LessonModel) IsParticipant(userID uuid.UUID) bool {
	return l.StudentID == userID || l.TeacherID == userID
}

// BlockingStatuses are the lesson states that occupy a time slot.
var BlockingStatuses = []string{LessonStatusScheduled, LessonStatusInProgress}
