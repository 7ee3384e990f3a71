package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	teacherModel "tutorku_backend/internals/features/teachers/model"
	authDTO "tutorku_backend/internals/features/users/auth/dto"
	authModel "tutorku_backend/internals/features/users/auth/model"
	userModel "tutorku_backend/internals/features/users/user/model"
)

const defaultPricePerLesson = 7000 // KZT

/* ==========================
   Register
========================== */

// Register creates the user row and, for teachers, the teacher profile in one
// transaction. Duplicate phone → 409.
func Register(db *gorm.DB, req *authDTO.RegisterRequest) (*userModel.UserModel, error) {
	role := req.Role
	if role == "" {
		role = constants.RoleStudent
	}
	if !constants.IsValidRole(role) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user role")
	}

	phone := NormalizePhone(req.Phone)

	var existing userModel.UserModel
	err := db.Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "A user with this phone number already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		Name:     req.Name,
		Phone:    phone,
		Email:    req.Email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if role == constants.RoleStudent {
		user.Grade = req.Grade
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role == constants.RoleTeacher {
			price := req.PricePerLesson
			if price == 0 {
				price = defaultPricePerLesson
			}
			teacher := teacherModel.TeacherModel{
				UserID:         user.ID,
				Bio:            req.Bio,
				Subjects:       req.Subjects,
				PricePerLesson: price,
				IsActive:       true,
			}
			if err := tx.Create(&teacher).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}
	return &user, nil
}

/* ==========================
   Login
========================== */

// Login finds the user by phone (admins may use email), checks the password
// and returns the user plus the teacher profile when applicable.
func Login(db *gorm.DB, req *authDTO.LoginRequest) (*userModel.UserModel, *teacherModel.TeacherModel, error) {
	role := req.Role
	if role == "" {
		role = constants.RoleStudent
	}

	q := db.Where("role = ?", role)
	switch {
	case req.Email != "" && role == constants.RoleAdmin:
		q = q.Where("email = ?", req.Email)
	case req.Phone != "":
		q = q.Where("phone = ?", NormalizePhone(req.Phone))
	default:
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Phone (or email for admins) is required")
	}

	var user userModel.UserModel
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}

	if !CheckPassword(user.Password, req.Password) {
		return nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, "Account deactivated")
	}

	var teacher *teacherModel.TeacherModel
	if user.Role == constants.RoleTeacher {
		var t teacherModel.TeacherModel
		if err := db.Where("user_id = ?", user.ID).First(&t).Error; err == nil {
			teacher = &t
		}
	}
	return &user, teacher, nil
}

/* ==========================
   Phone verification
========================== */

const verificationCodeTTL = 5 * time.Minute

// StartPhoneVerification issues and sends a one-time code.
func StartPhoneVerification(db *gorm.DB, phone string) (SMSResult, error) {
	normalized := NormalizePhone(phone)
	code := GenerateSMSCode()

	rec := authModel.VerificationCodeModel{
		Phone:     normalized,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(verificationCodeTTL),
	}
	if err := db.Create(&rec).Error; err != nil {
		return SMSResult{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to store verification code")
	}
	return SendSMSCode(normalized, code), nil
}

// ConfirmPhoneVerification checks the newest unused code and flags the user's
// phone as verified.
func ConfirmPhoneVerification(db *gorm.DB, phone, code string) error {
	normalized := NormalizePhone(phone)
	now := time.Now().UTC()

	var rec authModel.VerificationCodeModel
	err := db.Where("phone = ? AND used_at IS NULL", normalized).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No verification code requested for this phone")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}
	if rec.IsExpired(now) {
		return fiber.NewError(fiber.StatusConflict, "Verification code expired")
	}
	if rec.Code != code {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid verification code")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&authModel.VerificationCodeModel{}).
			Where("id = ?", rec.ID).
			Update("used_at", now).Error; err != nil {
			return err
		}
		// No-op when the phone is not registered yet; the flag is picked up
		// at registration in that case.
		return tx.Model(&userModel.UserModel{}).
			Where("phone = ?", normalized).
			Update("phone_verified", true).Error
	})
}
