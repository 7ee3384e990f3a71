package service

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tutorku_backend/internals/constants"
	dto "tutorku_backend/internals/features/bookings/dto"
	model "tutorku_backend/internals/features/bookings/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	teacherModel "tutorku_backend/internals/features/teachers/model"
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
		&teacherModel.TeacherModel{},
		&model.BookingModel{},
		&lessonModel.LessonModel{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, phone string, hasTrial bool) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Name:           "Айдар Нурланов",
		Phone:          phone,
		Password:       "x",
		Role:           constants.RoleStudent,
		HasTrialLesson: hasTrial,
		IsActive:       true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedTeacher(t *testing.T, db *gorm.DB, subjects ...string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Name:     "Гульнара Сатпаева",
		Phone:    "77011112233",
		Password: "x",
		Role:     constants.RoleTeacher,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	profile := &teacherModel.TeacherModel{
		UserID:         u.ID,
		Subjects:       pq.StringArray(subjects),
		PricePerLesson: 7000,
		IsActive:       true,
	}
	require.NoError(t, db.Create(profile).Error)
	return u
}

func bookingRequest(subject, date, timeStart, bookingType string) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		StudentName:  "Айдар Нурланов",
		StudentPhone: "+7 (701) 234-56-78",
		Subject:      subject,
		Date:         date,
		Time:         timeStart,
		Type:         bookingType,
	}
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	return fe.Code
}

/* ===================== Intake ===================== */

func TestCreateBookingAnonymousDefaultsToTrial(t *testing.T) {
	db := openTestDB(t)

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), nil)
	require.NoError(t, err)
	assert.Equal(t, model.BookingTypeTrial, booking.Type)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, "77012345678", booking.StudentPhone)
}

func TestCreateBookingTrialAlreadyUsed(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, "77012345678", true)

	_, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", "trial"), &student.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestCreateBookingDerivesTypeFromTrialFlag(t *testing.T) {
	db := openTestDB(t)
	fresh := seedStudent(t, db, "77012345678", false)
	used := seedStudent(t, db, "77023456789", true)

	b1, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), &fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingTypeTrial, b1.Type)

	b2, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "15:00", ""), &used.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingTypePaid, b2.Type)
}

func TestCreateBookingPaidAllowedAfterTrial(t *testing.T) {
	db := openTestDB(t)
	student := seedStudent(t, db, "77012345678", true)

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", "paid"), &student.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingTypePaid, booking.Type)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), nil)
	require.NoError(t, err)

	_, err = CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))

	// A different subject may still take the hour on the shared calendar
	// because intake narrows the occupancy check to its own subject.
	_, err = CreateBooking(db, bookingRequest("physics", "2026-09-01", "14:00", ""), nil)
	require.NoError(t, err)
}

func TestCreateBookingOutsideCatalog(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "13:00", ""), nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

/* ===================== Decision ===================== */

func TestAcceptBookingCreatesLesson(t *testing.T) {
	db := openTestDB(t)
	teacher := seedTeacher(t, db, "math")
	student := seedStudent(t, db, "77012345678", false)

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), &student.ID)
	require.NoError(t, err)

	lesson, updated, err := AcceptBooking(db, booking.ID, teacher.ID)
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusConfirmed, updated.Status)
	require.NotNil(t, updated.TeacherID)
	assert.Equal(t, teacher.ID, *updated.TeacherID)

	assert.Equal(t, student.ID, lesson.StudentID)
	assert.Equal(t, teacher.ID, lesson.TeacherID)
	assert.Equal(t, "14:00:00", lesson.TimeStart)
	assert.Equal(t, "15:00:00", lesson.TimeEnd)
	assert.Equal(t, lessonModel.LessonStatusScheduled, lesson.Status)
	assert.True(t, strings.HasPrefix(lesson.MeetingRoom, "lesson-math-2026-09-01-1400-"))

	var count int64
	require.NoError(t, db.Model(&lessonModel.LessonModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAcceptBookingTwiceConflicts(t *testing.T) {
	db := openTestDB(t)
	teacher := seedTeacher(t, db, "math")
	student := seedStudent(t, db, "77012345678", false)

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), &student.ID)
	require.NoError(t, err)

	_, _, err = AcceptBooking(db, booking.ID, teacher.ID)
	require.NoError(t, err)

	_, _, err = AcceptBooking(db, booking.ID, teacher.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))

	var count int64
	require.NoError(t, db.Model(&lessonModel.LessonModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "a repeated accept must not create a second lesson")
}

func TestAcceptBookingWrongSubject(t *testing.T) {
	db := openTestDB(t)
	teacher := seedTeacher(t, db, "math")
	student := seedStudent(t, db, "77012345678", false)

	booking, err := CreateBooking(db, bookingRequest("physics", "2026-09-01", "14:00", ""), &student.ID)
	require.NoError(t, err)

	_, _, err = AcceptBooking(db, booking.ID, teacher.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
}

func TestAcceptAnonymousBookingMatchesByPhone(t *testing.T) {
	db := openTestDB(t)
	teacher := seedTeacher(t, db, "math")
	student := seedStudent(t, db, "77012345678", false)

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), nil)
	require.NoError(t, err)

	lesson, _, err := AcceptBooking(db, booking.ID, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, lesson.StudentID)
}

func TestAcceptAnonymousBookingWithoutAccount(t *testing.T) {
	db := openTestDB(t)
	teacher := seedTeacher(t, db, "math")

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), nil)
	require.NoError(t, err)

	_, _, err = AcceptBooking(db, booking.ID, teacher.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))

	var count int64
	require.NoError(t, db.Model(&lessonModel.LessonModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRejectBookingCreatesNoLesson(t *testing.T) {
	db := openTestDB(t)
	teacher := seedTeacher(t, db, "math")
	student := seedStudent(t, db, "77012345678", false)

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), &student.ID)
	require.NoError(t, err)

	updated, err := RejectBooking(db, booking.ID, teacher.ID, "Занят в это время")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusRejected, updated.Status)
	assert.Equal(t, "Занят в это время", updated.Message)

	var count int64
	require.NoError(t, db.Model(&lessonModel.LessonModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRejectNonPendingBooking(t *testing.T) {
	db := openTestDB(t)
	teacher := seedTeacher(t, db, "math")
	student := seedStudent(t, db, "77012345678", false)

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), &student.ID)
	require.NoError(t, err)

	_, _, err = AcceptBooking(db, booking.ID, teacher.ID)
	require.NoError(t, err)

	_, err = RejectBooking(db, booking.ID, teacher.ID, "")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestRejectedSlotBecomesBookableAgain(t *testing.T) {
	db := openTestDB(t)
	teacher := seedTeacher(t, db, "math")
	student := seedStudent(t, db, "77012345678", false)

	booking, err := CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", ""), &student.ID)
	require.NoError(t, err)

	_, err = RejectBooking(db, booking.ID, teacher.ID, "")
	require.NoError(t, err)

	_, err = CreateBooking(db, bookingRequest("math", "2026-09-01", "14:00", "paid"), &student.ID)
	require.NoError(t, err)
}
