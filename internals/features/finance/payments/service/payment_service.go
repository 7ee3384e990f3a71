package service

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tutorku_backend/internals/features/finance/payments/dto"
	model "tutorku_backend/internals/features/finance/payments/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	teacherModel "tutorku_backend/internals/features/teachers/model"
	userModel "tutorku_backend/internals/features/users/user/model"
)

const defaultLessonPrice = 7000

// lessonPrice resolves the charge amount: explicit request amount, then the
// teacher's per-lesson price, then the platform default.
func lessonPrice(db *gorm.DB, lesson *lessonModel.LessonModel, requested int) int {
	if requested > 0 {
		return requested
	}
	var teacher teacherModel.TeacherModel
	if err := db.First(&teacher, "user_id = ?", lesson.TeacherID).Error; err == nil && teacher.PricePerLesson > 0 {
		return teacher.PricePerLesson
	}
	return defaultLessonPrice
}

// CreatePayment opens a pending charge for one of the student's lessons and
// returns it with a provider checkout URL.
func CreatePayment(db *gorm.DB, userID uuid.UUID, req *dto.CreatePaymentRequest) (*model.PaymentModel, error) {
	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	var lesson lessonModel.LessonModel
	if err := db.First(&lesson, "id = ? AND student_id = ?", lessonID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Урок не найден")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}

	var paidCount int64
	if err := db.Model(&model.PaymentModel{}).
		Where("lesson_id = ? AND status = ?", lessonID, model.PaymentStatusPaid).
		Count(&paidCount).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing payments")
	}
	if paidCount > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Урок уже оплачен")
	}

	provider := req.Provider
	if provider == "" || (provider == model.PaymentProviderMidtrans && !MidtransAvailable()) {
		provider = model.PaymentProviderKaspi
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}

	payment := &model.PaymentModel{
		UserID:   userID,
		LessonID: &lessonID,
		Amount:   lessonPrice(db, &lesson, req.Amount),
		Currency: model.DefaultCurrency,
		Provider: provider,
		Status:   model.PaymentStatusPending,
	}
	if err := db.Create(payment).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create payment")
	}

	switch provider {
	case model.PaymentProviderMidtrans:
		description := fmt.Sprintf("Lesson %s %s", lesson.Subject, lesson.Date)
		redirectURL, token, err := GenerateSnapCheckout(payment.ID.String(), payment.Amount, description, user.Name, user.Phone)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadGateway, "midtrans error: "+err.Error())
		}
		payment.CheckoutURL = redirectURL
		payment.ExternalID = token
	default:
		payment.CheckoutURL = BuildKaspiPayURL(payment.Amount, payment.ID.String(), lesson.Subject, lesson.Date, user.Name)
		payment.ExternalID = payment.ID.String()
	}

	if err := db.Model(payment).Updates(map[string]interface{}{
		"checkout_url": payment.CheckoutURL,
		"external_id":  payment.ExternalID,
	}).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to store checkout link")
	}
	return payment, nil
}

// ListPaymentsForUser returns the student's payments, newest first.
func ListPaymentsForUser(db *gorm.DB, userID uuid.UUID) ([]model.PaymentModel, error) {
	var payments []model.PaymentModel
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// GetPaymentForUser loads one payment owned by the student.
func GetPaymentForUser(db *gorm.DB, paymentID, userID uuid.UUID) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	err := db.First(&payment, "id = ? AND user_id = ?", paymentID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Платеж не найден")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment")
	}
	return &payment, nil
}
