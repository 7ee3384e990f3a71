package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	paymentModel "tutorku_backend/internals/features/finance/payments/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	helper "tutorku_backend/internals/helpers"
)

func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "quarter":
		return now.AddDate(0, -3, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "period must be one of week, month, quarter, year")
	}
}

/* =======================================================
   GET /api/a/reports?period=week|month|quarter|year
======================================================= */

// Reports aggregates revenue and lesson activity over a trailing window.
func (ctrl *AdminController) Reports(c *fiber.Ctx) error {
	period := c.Query("period", "month")
	since, err := periodStart(period, time.Now())
	if err != nil {
		return err
	}
	sinceDate := since.Format("2006-01-02")

	var revenue int64
	var paidCount int64
	ctrl.DB.Model(&paymentModel.PaymentModel{}).
		Where("status = ? AND created_at >= ?", paymentModel.PaymentStatusPaid, since).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenue)
	ctrl.DB.Model(&paymentModel.PaymentModel{}).
		Where("status = ? AND created_at >= ?", paymentModel.PaymentStatusPaid, since).
		Count(&paidCount)

	var completedLessons, canceledLessons int64
	ctrl.DB.Model(&lessonModel.LessonModel{}).
		Where("status = ? AND date >= ?", lessonModel.LessonStatusCompleted, sinceDate).
		Count(&completedLessons)
	ctrl.DB.Model(&lessonModel.LessonModel{}).
		Where("status = ? AND date >= ?", lessonModel.LessonStatusCanceled, sinceDate).
		Count(&canceledLessons)

	type subjectRow struct {
		Subject string `json:"subject"`
		Lessons int64  `json:"lessons"`
	}
	var bySubject []subjectRow
	if err := ctrl.DB.Model(&lessonModel.LessonModel{}).
		Select("subject, COUNT(*) AS lessons").
		Where("status = ? AND date >= ?", lessonModel.LessonStatusCompleted, sinceDate).
		Group("subject").
		Order("lessons DESC").
		Scan(&bySubject).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate subjects")
	}

	type teacherRow struct {
		TeacherID string `json:"teacher_id"`
		Name      string `json:"name"`
		Lessons   int64  `json:"lessons"`
	}
	var byTeacher []teacherRow
	if err := ctrl.DB.Model(&lessonModel.LessonModel{}).
		Select("lessons.teacher_id AS teacher_id, users.name AS name, COUNT(*) AS lessons").
		Joins("JOIN users ON users.id = lessons.teacher_id").
		Where("lessons.status = ? AND lessons.date >= ?", lessonModel.LessonStatusCompleted, sinceDate).
		Group("lessons.teacher_id, users.name").
		Order("lessons DESC").
		Scan(&byTeacher).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate teachers")
	}

	return helper.Success(c, "OK", fiber.Map{
		"period": period,
		"since":  sinceDate,
		"revenue": fiber.Map{
			"total":         revenue,
			"paid_payments": paidCount,
		},
		"lessons": fiber.Map{
			"completed": completedLessons,
			"canceled":  canceledLessons,
		},
		"by_subject": bySubject,
		"by_teacher": byTeacher,
	})
}
