package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookingModel "tutorku_backend/internals/features/bookings/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	dto "tutorku_backend/internals/features/teachers/dto"
	model "tutorku_backend/internals/features/teachers/model"
	helper "tutorku_backend/internals/helpers"
)

type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

// requireTeacher resolves the caller's teacher profile or fails 404.
func (ctrl *TeacherController) requireTeacher(c *fiber.Ctx) (*model.TeacherModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var teacher model.TeacherModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Teacher profile not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}
	return &teacher, nil
}

/* =======================================================
   GET /api/t/dashboard
   Pending bookings for the teacher's subjects, today's lessons, totals.
======================================================= */

func (ctrl *TeacherController) Dashboard(c *fiber.Ctx) error {
	teacher, err := ctrl.requireTeacher(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var pendingBookings []bookingModel.BookingModel
	if err := ctrl.DB.
		Where("subject IN ? AND status = ?", []string(teacher.Subjects), bookingModel.BookingStatusPending).
		Order("created_at DESC").
		Find(&pendingBookings).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch bookings")
	}

	today := time.Now().Format("2006-01-02")
	var todayLessons []lessonModel.LessonModel
	if err := ctrl.DB.
		Where("teacher_id = ? AND date = ? AND status IN ?",
			teacher.UserID, today,
			[]string{lessonModel.LessonStatusScheduled, lessonModel.LessonStatusInProgress}).
		Order("time ASC").
		Find(&todayLessons).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch lessons")
	}

	var totalLessons int64
	if err := ctrl.DB.Model(&lessonModel.LessonModel{}).
		Where("teacher_id = ?", teacher.UserID).
		Count(&totalLessons).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count lessons")
	}

	return helper.Success(c, "OK", fiber.Map{
		"teacher": teacher,
		"stats": fiber.Map{
			"pendingBookings": len(pendingBookings),
			"todayLessons":    len(todayLessons),
			"totalLessons":    totalLessons,
		},
		"pendingBookings": pendingBookings,
		"todayLessons":    todayLessons,
	})
}

/* =======================================================
   GET /api/t/schedule — weekly availability rows
======================================================= */

func (ctrl *TeacherController) GetSchedule(c *fiber.Ctx) error {
	teacher, err := ctrl.requireTeacher(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var schedule []model.TeacherScheduleModel
	if err := ctrl.DB.
		Where("teacher_id = ?", teacher.ID).
		Order("day_of_week ASC").
		Find(&schedule).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch schedule")
	}
	return helper.Success(c, "OK", schedule)
}

/* =======================================================
   PUT /api/t/schedule — replace the weekly availability wholesale
======================================================= */

func (ctrl *TeacherController) UpdateSchedule(c *fiber.Ctx) error {
	teacher, err := ctrl.requireTeacher(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("teacher_id = ?", teacher.ID).
			Delete(&model.TeacherScheduleModel{}).Error; err != nil {
			return err
		}
		for _, item := range req.Schedule {
			row := model.TeacherScheduleModel{
				TeacherID: teacher.ID,
				DayOfWeek: item.DayOfWeek,
				TimeStart: item.TimeStart,
				TimeEnd:   item.TimeEnd,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update schedule")
	}
	return helper.Success(c, "Schedule updated", nil)
}

/* =======================================================
   PATCH /api/t/profile — bio / subjects / price
======================================================= */

func (ctrl *TeacherController) UpdateProfile(c *fiber.Ctx) error {
	teacher, err := ctrl.requireTeacher(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateTeacherProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(req.Subjects) > 0 {
		updates["subjects"] = req.Subjects
	}
	if req.PricePerLesson != nil {
		updates["price_per_lesson"] = *req.PricePerLesson
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(teacher).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helper.Success(c, "Profile updated", teacher)
}
