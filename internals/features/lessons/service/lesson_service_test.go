package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tutorku_backend/internals/constants"
	model "tutorku_backend/internals/features/lessons/model"
	userModel "tutorku_backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&model.LessonModel{},
		&model.LessonNoteModel{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, hasTrial bool) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Name:           "Асель Каримова",
		Phone:          "77023456789",
		Password:       "x",
		Role:           constants.RoleStudent,
		HasTrialLesson: hasTrial,
		IsActive:       true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedLesson(t *testing.T, db *gorm.DB, studentID, teacherID uuid.UUID, date, lessonType, status string) *model.LessonModel {
	t.Helper()
	l := &model.LessonModel{
		StudentID:   studentID,
		TeacherID:   teacherID,
		Subject:     "math",
		Date:        date,
		Time:        "14:00",
		TimeStart:   "14:00:00",
		TimeEnd:     "15:00:00",
		Type:        lessonType,
		Status:      status,
		MeetingRoom: "lesson-math-" + date + "-1400-1",
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	return fe.Code
}

/* ===================== Lifecycle ===================== */

func TestStartLesson(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	lesson := seedLesson(t, db, student.ID, teacherID, "2026-09-01", model.LessonTypePaid, model.LessonStatusScheduled)

	started, err := StartLesson(db, lesson.ID, teacherID)
	require.NoError(t, err)
	assert.Equal(t, model.LessonStatusInProgress, started.Status)

	_, err = StartLesson(db, lesson.ID, teacherID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestStartLessonWrongTeacher(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	lesson := seedLesson(t, db, student.ID, uuid.New(), "2026-09-01", model.LessonTypePaid, model.LessonStatusScheduled)

	_, err := StartLesson(db, lesson.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
}

func TestCompleteTrialLessonSetsFlag(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	lesson := seedLesson(t, db, student.ID, teacherID, "2026-09-01", model.LessonTypeTrial, model.LessonStatusInProgress)

	completed, note, err := CompleteLesson(db, lesson.ID, teacherID, "Хорошая работа", "Задачи 1-10")
	require.NoError(t, err)
	assert.Equal(t, model.LessonStatusCompleted, completed.Status)
	assert.Equal(t, "Хорошая работа", note.TeacherComment)
	assert.Equal(t, "Задачи 1-10", note.Homework)

	var refreshed userModel.UserModel
	require.NoError(t, db.First(&refreshed, "id = ?", student.ID).Error)
	assert.True(t, refreshed.HasTrialLesson)
}

func TestCompleteTrialFlagIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, true)
	teacherID := uuid.New()
	lesson := seedLesson(t, db, student.ID, teacherID, "2026-09-01", model.LessonTypeTrial, model.LessonStatusScheduled)

	_, _, err := CompleteLesson(db, lesson.ID, teacherID, "", "")
	require.NoError(t, err)

	// Once used, the flag never resets.
	var refreshed userModel.UserModel
	require.NoError(t, db.First(&refreshed, "id = ?", student.ID).Error)
	assert.True(t, refreshed.HasTrialLesson)
}

func TestCompletePaidLessonLeavesFlag(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	lesson := seedLesson(t, db, student.ID, teacherID, "2026-09-01", model.LessonTypePaid, model.LessonStatusInProgress)

	_, _, err := CompleteLesson(db, lesson.ID, teacherID, "", "")
	require.NoError(t, err)

	var refreshed userModel.UserModel
	require.NoError(t, db.First(&refreshed, "id = ?", student.ID).Error)
	assert.False(t, refreshed.HasTrialLesson)
}

func TestCompleteCompletedLessonConflicts(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	lesson := seedLesson(t, db, student.ID, teacherID, "2026-09-01", model.LessonTypeTrial, model.LessonStatusInProgress)

	_, _, err := CompleteLesson(db, lesson.ID, teacherID, "", "")
	require.NoError(t, err)

	_, _, err = CompleteLesson(db, lesson.ID, teacherID, "", "")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestCancelLesson(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	lesson := seedLesson(t, db, student.ID, teacherID, "2026-09-01", model.LessonTypePaid, model.LessonStatusScheduled)

	canceled, err := CancelLesson(db, lesson.ID, teacherID)
	require.NoError(t, err)
	assert.Equal(t, model.LessonStatusCanceled, canceled.Status)

	_, err = CancelLesson(db, lesson.ID, teacherID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

/* ===================== Room access ===================== */

func TestRoomAccessParticipantsOnly(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	today := time.Now().Format("2006-01-02")
	lesson := seedLesson(t, db, student.ID, teacherID, today, model.LessonTypePaid, model.LessonStatusScheduled)

	_, err := GetRoomAccess(db, lesson.ID, uuid.New(), constants.RoleStudent, "")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	access, err := GetRoomAccess(db, lesson.ID, uuid.New(), constants.RoleAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, lesson.MeetingRoom, access.Room)
}

func TestRoomAccessStudentOnlyOnLessonDate(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	lesson := seedLesson(t, db, student.ID, teacherID, tomorrow, model.LessonTypePaid, model.LessonStatusScheduled)

	_, err := GetRoomAccess(db, lesson.ID, student.ID, constants.RoleStudent, "")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	// The teacher may open the room ahead of time.
	access, err := GetRoomAccess(db, lesson.ID, teacherID, constants.RoleTeacher, "")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleTeacher, access.Role)
}

func TestRoomAccessRoleHints(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	today := time.Now().Format("2006-01-02")
	lesson := seedLesson(t, db, student.ID, teacherID, today, model.LessonTypePaid, model.LessonStatusScheduled)

	// No token name claim: the display name comes from the users table.
	studentAccess, err := GetRoomAccess(db, lesson.ID, student.ID, constants.RoleStudent, "")
	require.NoError(t, err)
	assert.Equal(t, student.Name, studentAccess.DisplayName)
	assert.Equal(t, true, studentAccess.Config["startWithAudioMuted"])
	assert.Equal(t, false, studentAccess.Config["moderator"])
	assert.NotContains(t, studentAccess.Config["toolbarButtons"], "recording")

	teacherAccess, err := GetRoomAccess(db, lesson.ID, teacherID, constants.RoleTeacher, "Гульнара Сатпаева")
	require.NoError(t, err)
	assert.Equal(t, "Гульнара Сатпаева", teacherAccess.DisplayName)
	assert.Equal(t, false, teacherAccess.Config["startWithAudioMuted"])
	assert.Equal(t, true, teacherAccess.Config["moderator"])
	assert.Contains(t, teacherAccess.Config["toolbarButtons"], "recording")
	assert.Contains(t, teacherAccess.Config["toolbarButtons"], "desktop")
}

func TestRoomAccessInactiveLesson(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, false)
	teacherID := uuid.New()
	today := time.Now().Format("2006-01-02")
	lesson := seedLesson(t, db, student.ID, teacherID, today, model.LessonTypePaid, model.LessonStatusCanceled)

	_, err := GetRoomAccess(db, lesson.ID, student.ID, constants.RoleStudent, "")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}
