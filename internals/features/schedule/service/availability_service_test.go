package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookingModel "tutorku_backend/internals/features/bookings/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&bookingModel.BookingModel{},
		&lessonModel.LessonModel{},
	))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB, date, timeStart, subject, status string) {
	t.Helper()
	b := &bookingModel.BookingModel{
		StudentName:  "Айдар Нурланов",
		StudentPhone: "77012345678",
		Subject:      subject,
		Date:         date,
		Time:         timeStart,
		Type:         bookingModel.BookingTypeTrial,
		Status:       status,
	}
	require.NoError(t, db.Create(b).Error)
}

func seedLesson(t *testing.T, db *gorm.DB, date, timeStart, subject, status string) {
	t.Helper()
	l := &lessonModel.LessonModel{
		StudentID:   uuid.New(),
		TeacherID:   uuid.New(),
		Subject:     subject,
		Date:        date,
		Time:        timeStart,
		TimeStart:   timeStart + ":00",
		TimeEnd:     "23:59:59",
		Type:        lessonModel.LessonTypePaid,
		Status:      status,
		MeetingRoom: "lesson-test",
	}
	require.NoError(t, db.Create(l).Error)
}

func TestAvailableTimesEmptyDay(t *testing.T) {
	db := openTestDB(t)

	times, err := AvailableTimes(db, "2026-09-01", "")
	require.NoError(t, err)
	assert.Equal(t, SlotCatalog, times)
}

func TestAvailableTimesKeepsCatalogOrder(t *testing.T) {
	db := openTestDB(t)
	seedBooking(t, db, "2026-09-01", "09:00", "math", bookingModel.BookingStatusPending)
	seedLesson(t, db, "2026-09-01", "16:00", "physics", lessonModel.LessonStatusScheduled)

	times, err := AvailableTimes(db, "2026-09-01", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "14:00", "15:00", "17:00", "18:00", "19:00"}, times)
}

func TestAvailableTimesSubjectNarrowing(t *testing.T) {
	db := openTestDB(t)
	seedBooking(t, db, "2026-09-01", "10:00", "math", bookingModel.BookingStatusConfirmed)

	// Shared calendar: no filter sees the slot as taken.
	all, err := AvailableTimes(db, "2026-09-01", "")
	require.NoError(t, err)
	assert.NotContains(t, all, "10:00")

	// A different subject does not compete for the hour.
	physics, err := AvailableTimes(db, "2026-09-01", "physics")
	require.NoError(t, err)
	assert.Contains(t, physics, "10:00")

	math, err := AvailableTimes(db, "2026-09-01", "math")
	require.NoError(t, err)
	assert.NotContains(t, math, "10:00")
}

func TestAvailableTimesIgnoresSettledStates(t *testing.T) {
	db := openTestDB(t)
	seedBooking(t, db, "2026-09-01", "11:00", "math", bookingModel.BookingStatusRejected)
	seedLesson(t, db, "2026-09-01", "12:00", "math", lessonModel.LessonStatusCompleted)
	seedLesson(t, db, "2026-09-01", "14:00", "math", lessonModel.LessonStatusCanceled)

	times, err := AvailableTimes(db, "2026-09-01", "")
	require.NoError(t, err)
	assert.Equal(t, SlotCatalog, times)
}

func TestAvailableTimesOtherDateUnaffected(t *testing.T) {
	db := openTestDB(t)
	seedBooking(t, db, "2026-09-01", "09:00", "math", bookingModel.BookingStatusPending)

	times, err := AvailableTimes(db, "2026-09-02", "")
	require.NoError(t, err)
	assert.Equal(t, SlotCatalog, times)
}

func TestIsSlotFree(t *testing.T) {
	db := openTestDB(t)
	seedLesson(t, db, "2026-09-01", "15:00", "english", lessonModel.LessonStatusInProgress)

	free, err := IsSlotFree(db, "2026-09-01", "15:00", "")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = IsSlotFree(db, "2026-09-01", "17:00", "")
	require.NoError(t, err)
	assert.True(t, free)

	free, err = IsSlotFree(db, "2026-09-01", "15:00", "math")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestDaySchedule(t *testing.T) {
	db := openTestDB(t)
	seedBooking(t, db, "2026-09-01", "18:00", "russian", bookingModel.BookingStatusPending)

	slots, err := DaySchedule(db, "2026-09-01", "")
	require.NoError(t, err)
	require.Len(t, slots, len(SlotCatalog))
	for _, s := range slots {
		if s.Time == "18:00" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available, "slot %s", s.Time)
		}
	}
}

func TestFindGapsGroupsByCatalogAdjacency(t *testing.T) {
	db := openTestDB(t)
	seedBooking(t, db, "2026-09-01", "11:00", "math", bookingModel.BookingStatusPending)
	seedLesson(t, db, "2026-09-01", "15:00", "math", lessonModel.LessonStatusScheduled)

	gaps, err := FindGaps(db, []string{"2026-09-01"}, "")
	require.NoError(t, err)

	// 12:00 and 14:00 are adjacent in the catalog, so they form one gap.
	assert.Equal(t, []Gap{
		{Date: "2026-09-01", Time: "09:00", Duration: 2},
		{Date: "2026-09-01", Time: "12:00", Duration: 2},
		{Date: "2026-09-01", Time: "16:00", Duration: 4},
	}, gaps)
}

func TestFindGapsFullyBookedDay(t *testing.T) {
	db := openTestDB(t)
	for _, slot := range SlotCatalog {
		seedBooking(t, db, "2026-09-01", slot, "math", bookingModel.BookingStatusConfirmed)
	}

	gaps, err := FindGaps(db, []string{"2026-09-01"}, "")
	require.NoError(t, err)
	assert.Empty(t, gaps)
}

func TestFindGapsSpansDates(t *testing.T) {
	db := openTestDB(t)
	seedBooking(t, db, "2026-09-01", "09:00", "math", bookingModel.BookingStatusPending)

	gaps, err := FindGaps(db, []string{"2026-09-01", "2026-09-02"}, "")
	require.NoError(t, err)
	require.Len(t, gaps, 2)
	assert.Equal(t, Gap{Date: "2026-09-01", Time: "10:00", Duration: 9}, gaps[0])
	assert.Equal(t, Gap{Date: "2026-09-02", Time: "09:00", Duration: 10}, gaps[1])
}
