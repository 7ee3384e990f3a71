package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "tutorku_backend/internals/features/users/auth/dto"
	authService "tutorku_backend/internals/features/users/auth/service"
	helper "tutorku_backend/internals/helpers"
)

type VerificationController struct {
	DB *gorm.DB
}

func NewVerificationController(db *gorm.DB) *VerificationController {
	return &VerificationController{DB: db}
}

/* =======================================================
   POST /api/auth/send-code
======================================================= */

func (ctrl *VerificationController) SendCode(c *fiber.Ctx) error {
	var req authDTO.SendCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := authService.StartPhoneVerification(ctrl.DB, req.Phone)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !result.Success {
		return helper.Error(c, fiber.StatusBadGateway, result.Message)
	}
	return helper.Success(c, result.Message, nil)
}

/* =======================================================
   POST /api/auth/verify-code
======================================================= */

func (ctrl *VerificationController) VerifyCode(c *fiber.Ctx) error {
	var req authDTO.VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := authService.ConfirmPhoneVerification(ctrl.DB, req.Phone, req.Code); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Phone verified", nil)
}
