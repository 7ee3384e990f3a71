package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonNoteModel holds the teacher's post-lesson comment and homework.
// One row per lesson, upserted on completion.
type LessonNoteModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"lesson_id"`

	TeacherComment string `gorm:"type:text" json:"teacher_comment"`
	Homework       string `gorm:"type:text" json:"homework"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LessonNoteModel) TableName() string {
	return "lesson_notes"
}

func (n *LessonNoteModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
