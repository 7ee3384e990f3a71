package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tutorku_backend/internals/constants"
	dto "tutorku_backend/internals/features/finance/payments/dto"
	model "tutorku_backend/internals/features/finance/payments/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	teacherModel "tutorku_backend/internals/features/teachers/model"
	userModel "tutorku_backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&teacherModel.TeacherModel{},
		&lessonModel.LessonModel{},
		&model.PaymentModel{},
	))
	return db
}

func seedLessonWithStudent(t *testing.T, db *gorm.DB) (*userModel.UserModel, *lessonModel.LessonModel) {
	t.Helper()
	student := &userModel.UserModel{
		Name:     "Айдар Нурланов",
		Phone:    "77012345678",
		Password: "x",
		Role:     constants.RoleStudent,
		IsActive: true,
	}
	require.NoError(t, db.Create(student).Error)

	lesson := &lessonModel.LessonModel{
		StudentID:   student.ID,
		TeacherID:   uuid.New(),
		Subject:     "math",
		Date:        "2026-09-01",
		Time:        "14:00",
		TimeStart:   "14:00:00",
		TimeEnd:     "15:00:00",
		Type:        lessonModel.LessonTypePaid,
		Status:      lessonModel.LessonStatusScheduled,
		MeetingRoom: "lesson-math-2026-09-01-1400-1",
	}
	require.NoError(t, db.Create(lesson).Error)
	return student, lesson
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	return fe.Code
}

/* ===================== Creation ===================== */

func TestCreatePaymentDefaultsToKaspi(t *testing.T) {
	db := openTestDB(t)
	student, lesson := seedLessonWithStudent(t, db)

	payment, err := CreatePayment(db, student.ID, &dto.CreatePaymentRequest{LessonID: lesson.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentProviderKaspi, payment.Provider)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
	assert.Equal(t, model.DefaultCurrency, payment.Currency)
	assert.Equal(t, 7000, payment.Amount)
	assert.Contains(t, payment.CheckoutURL, "kaspi.kz/pay")
	assert.Contains(t, payment.CheckoutURL, "order_id="+payment.ID.String())
}

func TestCreatePaymentUsesTeacherPrice(t *testing.T) {
	db := openTestDB(t)
	student, lesson := seedLessonWithStudent(t, db)

	teacherUser := &userModel.UserModel{Name: "T", Phone: "77011112233", Password: "x", Role: constants.RoleTeacher, IsActive: true}
	require.NoError(t, db.Create(teacherUser).Error)
	require.NoError(t, db.Create(&teacherModel.TeacherModel{
		UserID:         teacherUser.ID,
		PricePerLesson: 9500,
		IsActive:       true,
	}).Error)
	require.NoError(t, db.Model(lesson).Update("teacher_id", teacherUser.ID).Error)

	payment, err := CreatePayment(db, student.ID, &dto.CreatePaymentRequest{LessonID: lesson.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 9500, payment.Amount)
}

func TestCreatePaymentForPaidLessonConflicts(t *testing.T) {
	db := openTestDB(t)
	student, lesson := seedLessonWithStudent(t, db)

	payment, err := CreatePayment(db, student.ID, &dto.CreatePaymentRequest{LessonID: lesson.ID.String()})
	require.NoError(t, err)
	require.NoError(t, db.Model(payment).Update("status", model.PaymentStatusPaid).Error)

	_, err = CreatePayment(db, student.ID, &dto.CreatePaymentRequest{LessonID: lesson.ID.String()})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestCreatePaymentForeignLesson(t *testing.T) {
	db := openTestDB(t)
	_, lesson := seedLessonWithStudent(t, db)

	other := &userModel.UserModel{Name: "X", Phone: "77099999999", Password: "x", Role: constants.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(other).Error)

	_, err := CreatePayment(db, other.ID, &dto.CreatePaymentRequest{LessonID: lesson.ID.String()})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

/* ===================== Webhook ===================== */

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"orderId":"x","status":"SUCCESS"}`)
	good := ComputeWebhookSignature("secret", body)

	assert.True(t, VerifyWebhookSignature("secret", body, good))
	assert.False(t, VerifyWebhookSignature("secret", body, "deadbeef"))
	assert.False(t, VerifyWebhookSignature("secret", []byte(`tampered`), good))
	assert.False(t, VerifyWebhookSignature("secret", body, ""))
	assert.False(t, VerifyWebhookSignature("", body, good), "unset secret must reject everything")
}

func TestApplyWebhookSuccess(t *testing.T) {
	db := openTestDB(t)
	student, lesson := seedLessonWithStudent(t, db)

	payment, err := CreatePayment(db, student.ID, &dto.CreatePaymentRequest{LessonID: lesson.ID.String()})
	require.NoError(t, err)

	updated, err := ApplyWebhook(db, &dto.WebhookPayload{
		OrderID:       payment.ID.String(),
		Status:        "SUCCESS",
		TransactionID: "txn-123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, updated.Status)
	require.NotNil(t, updated.PaidAt)

	var stored model.PaymentModel
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, model.PaymentStatusPaid, stored.Status)
	assert.Equal(t, "txn-123", stored.ExternalID)
}

func TestApplyWebhookFailure(t *testing.T) {
	db := openTestDB(t)
	student, lesson := seedLessonWithStudent(t, db)

	payment, err := CreatePayment(db, student.ID, &dto.CreatePaymentRequest{LessonID: lesson.ID.String()})
	require.NoError(t, err)

	updated, err := ApplyWebhook(db, &dto.WebhookPayload{
		OrderID: payment.ID.String(),
		Status:  "FAILED",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, updated.Status)
	assert.Nil(t, updated.PaidAt)
}

func TestApplyWebhookIdempotentOnPaid(t *testing.T) {
	db := openTestDB(t)
	student, lesson := seedLessonWithStudent(t, db)

	payment, err := CreatePayment(db, student.ID, &dto.CreatePaymentRequest{LessonID: lesson.ID.String()})
	require.NoError(t, err)

	_, err = ApplyWebhook(db, &dto.WebhookPayload{OrderID: payment.ID.String(), Status: "SUCCESS", TransactionID: "txn-1"})
	require.NoError(t, err)

	// A late duplicate, even a contradictory one, must not flip a paid payment.
	updated, err := ApplyWebhook(db, &dto.WebhookPayload{OrderID: payment.ID.String(), Status: "FAILED"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, updated.Status)
}

func TestApplyWebhookUnknownPayment(t *testing.T) {
	db := openTestDB(t)

	_, err := ApplyWebhook(db, &dto.WebhookPayload{OrderID: uuid.New().String(), Status: "SUCCESS"})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

/* ===================== Kaspi link ===================== */

func TestBuildKaspiPayURL(t *testing.T) {
	u := BuildKaspiPayURL(7000, "order-1", "math", "2026-09-01", "Айдар Нурланов")
	assert.Contains(t, u, "https://kaspi.kz/pay?")
	assert.Contains(t, u, "amount=7000")
	assert.Contains(t, u, "order_id=order-1")
}
