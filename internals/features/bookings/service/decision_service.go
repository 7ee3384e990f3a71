package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "tutorku_backend/internals/features/bookings/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	teacherModel "tutorku_backend/internals/features/teachers/model"
	authService "tutorku_backend/internals/features/users/auth/service"
	userModel "tutorku_backend/internals/features/users/user/model"
)

// BuildMeetingRoom derives the conferencing room name for a lesson. The
// millisecond suffix keeps names unique across re-bookings of the same slot.
func BuildMeetingRoom(subject, date, timeStart string) string {
	return fmt.Sprintf("lesson-%s-%s-%s-%d",
		subject, date, strings.ReplaceAll(timeStart, ":", ""), time.Now().UnixMilli())
}

func slotPlusHour(timeStart string) (string, string, error) {
	t, err := time.Parse("15:04", timeStart)
	if err != nil {
		return "", "", err
	}
	return t.Format("15:04:05"), t.Add(time.Hour).Format("15:04:05"), nil
}

// resolveStudent finds the users row the lesson will belong to. Anonymous
// bookings are matched to an account by phone; without one there is nobody
// to attach the lesson to yet.
func resolveStudent(tx *gorm.DB, booking *model.BookingModel) (uuid.UUID, error) {
	if booking.UserID != nil {
		return *booking.UserID, nil
	}
	var user userModel.UserModel
	err := tx.First(&user, "phone = ?", authService.NormalizePhone(booking.StudentPhone)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fiber.NewError(fiber.StatusConflict,
			"Студент ещё не зарегистрирован — попросите его создать аккаунт с этим номером")
	}
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// AcceptBooking confirms a pending booking and creates its lesson in one
// transaction. The pending check rides on the UPDATE's row count, so a
// concurrent accept of the same booking loses cleanly with a conflict.
func AcceptBooking(db *gorm.DB, bookingID, teacherUserID uuid.UUID) (*lessonModel.LessonModel, *model.BookingModel, error) {
	var teacher teacherModel.TeacherModel
	if err := db.First(&teacher, "user_id = ?", teacherUserID).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Teacher profile not found")
	}

	var booking model.BookingModel
	var lesson *lessonModel.LessonModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Booking not found")
			}
			return err
		}
		if !teacher.Teaches(booking.Subject) {
			return fiber.NewError(fiber.StatusForbidden, "You do not teach this subject")
		}

		studentID, err := resolveStudent(tx, &booking)
		if err != nil {
			return err
		}

		// Another lesson may have claimed the hour since the booking came in.
		var clash int64
		if err := tx.Model(&lessonModel.LessonModel{}).
			Where("date = ? AND time = ? AND status IN ?",
				booking.Date, booking.Time, lessonModel.BlockingStatuses).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return fiber.NewError(fiber.StatusConflict, "Это время уже занято другим уроком")
		}

		res := tx.Model(&model.BookingModel{}).
			Where("id = ? AND status = ?", bookingID, model.BookingStatusPending).
			Updates(map[string]interface{}{
				"status":     model.BookingStatusConfirmed,
				"teacher_id": teacherUserID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Booking is no longer pending")
		}

		timeStart, timeEnd, err := slotPlusHour(booking.Time)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Booking has a malformed time")
		}

		lesson = &lessonModel.LessonModel{
			StudentID:   studentID,
			TeacherID:   teacherUserID,
			Subject:     booking.Subject,
			Date:        booking.Date,
			Time:        booking.Time,
			TimeStart:   timeStart,
			TimeEnd:     timeEnd,
			Type:        booking.Type,
			Status:      lessonModel.LessonStatusScheduled,
			MeetingRoom: BuildMeetingRoom(booking.Subject, booking.Date, booking.Time),
		}
		return tx.Create(lesson).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return nil, nil, fe
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to accept booking")
	}

	booking.Status = model.BookingStatusConfirmed
	booking.TeacherID = &teacherUserID
	return lesson, &booking, nil
}

// RejectBooking marks a pending booking rejected with an optional reason.
// No lesson is created.
func RejectBooking(db *gorm.DB, bookingID, teacherUserID uuid.UUID, message string) (*model.BookingModel, error) {
	var teacher teacherModel.TeacherModel
	if err := db.First(&teacher, "user_id = ?", teacherUserID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Teacher profile not found")
	}

	var booking model.BookingModel
	if err := db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load booking")
	}
	if !teacher.Teaches(booking.Subject) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not teach this subject")
	}

	res := db.Model(&model.BookingModel{}).
		Where("id = ? AND status = ?", bookingID, model.BookingStatusPending).
		Updates(map[string]interface{}{
			"status":     model.BookingStatusRejected,
			"teacher_id": teacherUserID,
			"message":    message,
		})
	if res.Error != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to reject booking")
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Booking is no longer pending")
	}

	booking.Status = model.BookingStatusRejected
	booking.TeacherID = &teacherUserID
	booking.Message = message
	return &booking, nil
}
