package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tutorku_backend/internals/features/bookings/dto"
	model "tutorku_backend/internals/features/bookings/model"
	scheduleService "tutorku_backend/internals/features/schedule/service"
	authService "tutorku_backend/internals/features/users/auth/service"
	userModel "tutorku_backend/internals/features/users/user/model"
)

func slotInCatalog(t string) bool {
	for _, slot := range scheduleService.SlotCatalog {
		if slot == t {
			return true
		}
	}
	return false
}

// CreateBooking validates a request, applies the trial rule and inserts the
// booking. userID is nil for anonymous landing-form submissions.
//
// The slot is re-checked inside the insert transaction, so two concurrent
// requests for the same hour cannot both land.
func CreateBooking(db *gorm.DB, req *dto.CreateBookingRequest, userID *uuid.UUID) (*model.BookingModel, error) {
	if !slotInCatalog(req.Time) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Время вне рабочей сетки") // outside the slot grid
	}

	bookingType := req.Type
	var user *userModel.UserModel
	if userID != nil {
		var u userModel.UserModel
		if err := db.First(&u, "id = ?", *userID).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}
		user = &u
		// Signed-in students get the trial automatically while it is unused.
		if bookingType == "" {
			if u.HasTrialLesson {
				bookingType = model.BookingTypePaid
			} else {
				bookingType = model.BookingTypeTrial
			}
		}
	}
	if bookingType == "" {
		bookingType = model.BookingTypeTrial
	}

	if bookingType == model.BookingTypeTrial && user != nil && user.HasTrialLesson {
		return nil, fiber.NewError(fiber.StatusConflict, "Бесплатный пробный урок уже использован")
	}

	booking := &model.BookingModel{
		UserID:        userID,
		StudentName:   req.StudentName,
		StudentPhone:  authService.NormalizePhone(req.StudentPhone),
		Grade:         req.Grade,
		Subject:       req.Subject,
		Date:          req.Date,
		Time:          req.Time,
		ContactMethod: req.ContactMethod,
		Comments:      req.Comments,
		Type:          bookingType,
		Status:        model.BookingStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		free, err := scheduleService.IsSlotFree(tx, req.Date, req.Time, req.Subject)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check slot availability")
		}
		if !free {
			return fiber.NewError(fiber.StatusConflict, "Это время уже занято")
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create booking")
	}
	return booking, nil
}

// ListBookingsForUser returns the student's own bookings, newest first.
func ListBookingsForUser(db *gorm.DB, userID uuid.UUID) ([]model.BookingModel, error) {
	var bookings []model.BookingModel
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}
