package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teacherModel "tutorku_backend/internals/features/teachers/model"
	authDTO "tutorku_backend/internals/features/users/auth/dto"
	authService "tutorku_backend/internals/features/users/auth/service"
	userDTO "tutorku_backend/internals/features/users/user/dto"
	userModel "tutorku_backend/internals/features/users/user/model"
	helper "tutorku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* =======================================================
   POST /api/auth/register
======================================================= */

func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := authService.Register(ctrl.DB, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registration successful", userDTO.FromModel(user))
}

/* =======================================================
   POST /api/auth/login
======================================================= */

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	user, teacher, err := authService.Login(ctrl.DB, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	access, err := authService.IssueAccessToken(user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	refresh, err := authService.IssueRefreshToken(ctrl.DB, user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	setRefreshCookie(c, refresh)

	resp := authDTO.LoginResponse{
		AccessToken: access,
		User:        userDTO.FromModel(user),
	}
	if teacher != nil {
		resp.Teacher = teacher
	}
	return helper.Success(c, "Login successful", resp)
}

/* =======================================================
   POST /api/auth/refresh-token
======================================================= */

func (ctrl *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies("refresh_token"))
	if raw == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	user, err := authService.RotateRefreshToken(ctrl.DB, raw)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	access, err := authService.IssueAccessToken(user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	refresh, err := authService.IssueRefreshToken(ctrl.DB, user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	setRefreshCookie(c, refresh)

	return helper.Success(c, "Token refreshed", authDTO.LoginResponse{
		AccessToken: access,
		User:        userDTO.FromModel(user),
	})
}

/* =======================================================
   POST /api/auth/logout  (auth required)
======================================================= */

func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	auth := strings.Fields(c.Get("Authorization"))
	if len(auth) == 2 {
		if err := authService.BlacklistAccessToken(ctrl.DB, auth[1]); err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to invalidate token")
		}
	}
	_ = authService.DeleteRefreshTokensForUser(ctrl.DB, userID)

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return helper.Success(c, "Logged out", nil)
}

/* =======================================================
   GET /api/auth/me  (auth required)
======================================================= */

func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User not found")
	}

	var teacher *teacherModel.TeacherModel
	if user.IsTeacher() {
		var t teacherModel.TeacherModel
		if err := ctrl.DB.Where("user_id = ?", user.ID).First(&t).Error; err == nil {
			teacher = &t
		}
	}

	return helper.Success(c, "OK", fiber.Map{
		"user":    userDTO.FromModel(&user),
		"teacher": teacher,
	})
}

func setRefreshCookie(c *fiber.Ctx, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Expires:  time.Now().Add(authService.RefreshTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}
