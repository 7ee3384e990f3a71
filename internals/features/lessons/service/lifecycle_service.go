package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutorku_backend/internals/constants"
	model "tutorku_backend/internals/features/lessons/model"
	userModel "tutorku_backend/internals/features/users/user/model"
)

func loadLessonForTeacher(db *gorm.DB, lessonID, teacherUserID uuid.UUID) (*model.LessonModel, error) {
	var lesson model.LessonModel
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}
	if lesson.TeacherID != teacherUserID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not your lesson")
	}
	return &lesson, nil
}

// StartLesson moves a scheduled lesson to in_progress.
func StartLesson(db *gorm.DB, lessonID, teacherUserID uuid.UUID) (*model.LessonModel, error) {
	lesson, err := loadLessonForTeacher(db, lessonID, teacherUserID)
	if err != nil {
		return nil, err
	}
	if lesson.Status != model.LessonStatusScheduled {
		return nil, fiber.NewError(fiber.StatusConflict, "Lesson cannot be started from its current status")
	}
	if err := db.Model(lesson).Update("status", model.LessonStatusInProgress).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to start lesson")
	}
	lesson.Status = model.LessonStatusInProgress
	return lesson, nil
}

// CompleteLesson finishes a lesson, upserts the teacher's note and, for a
// trial lesson, marks the student's trial as used. Setting the flag is
// idempotent: once true it stays true.
func CompleteLesson(db *gorm.DB, lessonID, teacherUserID uuid.UUID, comment, homework string) (*model.LessonModel, *model.LessonNoteModel, error) {
	lesson, err := loadLessonForTeacher(db, lessonID, teacherUserID)
	if err != nil {
		return nil, nil, err
	}
	if lesson.Status != model.LessonStatusScheduled && lesson.Status != model.LessonStatusInProgress {
		return nil, nil, fiber.NewError(fiber.StatusConflict, "Lesson cannot be completed from its current status")
	}

	note := &model.LessonNoteModel{
		LessonID:       lesson.ID,
		TeacherComment: comment,
		Homework:       homework,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(lesson).Update("status", model.LessonStatusCompleted).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"teacher_comment", "homework", "updated_at"}),
		}).Create(note).Error; err != nil {
			return err
		}
		if lesson.Type == model.LessonTypeTrial {
			return tx.Model(&userModel.UserModel{}).
				Where("id = ?", lesson.StudentID).
				Update("has_trial_lesson", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to complete lesson")
	}

	lesson.Status = model.LessonStatusCompleted
	return lesson, note, nil
}

// CancelLesson marks a scheduled lesson canceled, releasing its slot.
func CancelLesson(db *gorm.DB, lessonID, teacherUserID uuid.UUID) (*model.LessonModel, error) {
	lesson, err := loadLessonForTeacher(db, lessonID, teacherUserID)
	if err != nil {
		return nil, err
	}
	if lesson.Status != model.LessonStatusScheduled {
		return nil, fiber.NewError(fiber.StatusConflict, "Only scheduled lessons can be canceled")
	}
	if err := db.Model(lesson).Update("status", model.LessonStatusCanceled).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to cancel lesson")
	}
	lesson.Status = model.LessonStatusCanceled
	return lesson, nil
}

// ListLessonsForUser returns lessons where the user is a participant on
// either side, newest date first.
func ListLessonsForUser(db *gorm.DB, userID uuid.UUID) ([]model.LessonModel, error) {
	var lessons []model.LessonModel
	err := db.
		Where("student_id = ? OR teacher_id = ?", userID, userID).
		Order("date DESC, time DESC").
		Find(&lessons).Error
	return lessons, err
}

// FindLessonForViewer loads a lesson the user is allowed to see: admins see
// everything, participants see their own.
func FindLessonForViewer(db *gorm.DB, lessonID, userID uuid.UUID, role string) (*model.LessonModel, error) {
	var lesson model.LessonModel
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}
	if role != constants.RoleAdmin && !lesson.IsParticipant(userID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You are not a participant of this lesson")
	}
	return &lesson, nil
}

// GetLessonNote loads the note for a lesson, if any.
func GetLessonNote(db *gorm.DB, lessonID uuid.UUID) *model.LessonNoteModel {
	var note model.LessonNoteModel
	if err := db.First(&note, "lesson_id = ?", lessonID).Error; err != nil {
		return nil
	}
	return &note
}
