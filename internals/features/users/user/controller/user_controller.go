package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookingModel "tutorku_backend/internals/features/bookings/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	dto "tutorku_backend/internals/features/users/user/dto"
	model "tutorku_backend/internals/features/users/user/model"
	helper "tutorku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

/* =======================================================
   GET /api/u/profile
======================================================= */

// Profile returns the account with its activity counters for the cabinet
// header.
func (ctrl *UserController) Profile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	var pendingBookings, completedLessons, upcomingLessons int64
	ctrl.DB.Model(&bookingModel.BookingModel{}).
		Where("user_id = ? AND status = ?", userID, bookingModel.BookingStatusPending).
		Count(&pendingBookings)
	ctrl.DB.Model(&lessonModel.LessonModel{}).
		Where("student_id = ? AND status = ?", userID, lessonModel.LessonStatusCompleted).
		Count(&completedLessons)
	ctrl.DB.Model(&lessonModel.LessonModel{}).
		Where("student_id = ? AND status = ?", userID, lessonModel.LessonStatusScheduled).
		Count(&upcomingLessons)

	return helper.Success(c, "OK", fiber.Map{
		"user": dto.FromModel(&user),
		"stats": fiber.Map{
			"pending_bookings":  pendingBookings,
			"completed_lessons": completedLessons,
			"upcoming_lessons":  upcomingLessons,
		},
	})
}

/* =======================================================
   PATCH /api/u/profile
======================================================= */

func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Grade != nil {
		updates["grade"] = *req.Grade
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&model.UserModel{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "Профиль обновлён", dto.FromModel(&user))
}
