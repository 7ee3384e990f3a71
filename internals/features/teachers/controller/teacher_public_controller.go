package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "tutorku_backend/internals/features/teachers/dto"
	model "tutorku_backend/internals/features/teachers/model"
	userModel "tutorku_backend/internals/features/users/user/model"
	helper "tutorku_backend/internals/helpers"
)

type TeacherPublicController struct {
	DB *gorm.DB
}

func NewTeacherPublicController(db *gorm.DB) *TeacherPublicController {
	return &TeacherPublicController{DB: db}
}

/* =======================================================
   GET /api/public/teachers?subject=
   Active teacher profiles for the landing page.
======================================================= */

func (ctrl *TeacherPublicController) ListTeachers(c *fiber.Ctx) error {
	var teachers []model.TeacherModel
	if err := ctrl.DB.
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&teachers).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch teachers")
	}

	subject := strings.TrimSpace(c.Query("subject"))

	out := make([]*dto.TeacherPublicResponse, 0, len(teachers))
	for i := range teachers {
		t := &teachers[i]
		if subject != "" && !t.Teaches(subject) {
			continue
		}
		var user userModel.UserModel
		name := ""
		if err := ctrl.DB.Select("name").First(&user, "id = ?", t.UserID).Error; err == nil {
			name = user.Name
		}
		out = append(out, dto.FromModelPublic(t, name))
	}
	return helper.Success(c, "OK", out)
}
