package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tutorku_backend/internals/features/lessons/dto"
	lessonService "tutorku_backend/internals/features/lessons/service"
	helper "tutorku_backend/internals/helpers"
)

type LessonController struct {
	DB *gorm.DB
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db}
}

func parseLessonID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}
	return id, nil
}

/* =======================================================
   GET /api/u/lessons
======================================================= */

func (ctrl *LessonController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	lessons, err := lessonService.ListLessonsForUser(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch lessons")
	}
	return helper.Success(c, "OK", dto.FromModels(lessons))
}

/* =======================================================
   GET /api/u/lessons/:id
======================================================= */

func (ctrl *LessonController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lessonID, err := parseLessonID(c)
	if err != nil {
		return err
	}

	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	lesson, err := lessonService.FindLessonForViewer(ctrl.DB, lessonID, userID, role)
	if err != nil {
		return err
	}
	note := lessonService.GetLessonNote(ctrl.DB, lesson.ID)
	return helper.Success(c, "OK", dto.FromModel(lesson, note))
}

/* =======================================================
   GET /api/u/lessons/:id/room
======================================================= */

func (ctrl *LessonController) Room(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lessonID, err := parseLessonID(c)
	if err != nil {
		return err
	}

	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	access, err := lessonService.GetRoomAccess(ctrl.DB, lessonID, userID, role, helper.GetUserNameFromToken(c))
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", access)
}

/* =======================================================
   POST /api/t/lessons/:id/start
   POST /api/t/lessons/:id/complete
   POST /api/t/lessons/:id/cancel
======================================================= */

func (ctrl *LessonController) Start(c *fiber.Ctx) error {
	teacherUserID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lessonID, err := parseLessonID(c)
	if err != nil {
		return err
	}

	lesson, err := lessonService.StartLesson(ctrl.DB, lessonID, teacherUserID)
	if err != nil {
		return err
	}
	return helper.Success(c, "Урок начат", dto.FromModel(lesson, nil))
}

func (ctrl *LessonController) Complete(c *fiber.Ctx) error {
	teacherUserID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lessonID, err := parseLessonID(c)
	if err != nil {
		return err
	}

	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	lesson, note, err := lessonService.CompleteLesson(ctrl.DB, lessonID, teacherUserID, req.TeacherComment, req.Homework)
	if err != nil {
		return err
	}
	return helper.Success(c, "Урок завершён", dto.FromModel(lesson, note))
}

func (ctrl *LessonController) Cancel(c *fiber.Ctx) error {
	teacherUserID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lessonID, err := parseLessonID(c)
	if err != nil {
		return err
	}

	lesson, err := lessonService.CancelLesson(ctrl.DB, lessonID, teacherUserID)
	if err != nil {
		return err
	}
	return helper.Success(c, "Урок отменён", dto.FromModel(lesson, nil))
}
