package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	adminDTO "tutorku_backend/internals/features/admin/dto"
	bookingDTO "tutorku_backend/internals/features/bookings/dto"
	bookingModel "tutorku_backend/internals/features/bookings/model"
	paymentDTO "tutorku_backend/internals/features/finance/payments/dto"
	paymentModel "tutorku_backend/internals/features/finance/payments/model"
	lessonDTO "tutorku_backend/internals/features/lessons/dto"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	teacherModel "tutorku_backend/internals/features/teachers/model"
	authService "tutorku_backend/internals/features/users/auth/service"
	userDTO "tutorku_backend/internals/features/users/user/dto"
	userModel "tutorku_backend/internals/features/users/user/model"
	helper "tutorku_backend/internals/helpers"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

/* =======================================================
   GET /api/a/stats
======================================================= */

func (ctrl *AdminController) Stats(c *fiber.Ctx) error {
	var totalUsers, totalStudents, totalTeachers int64
	var pendingBookings, totalLessons, completedLessons int64
	var totalPayments int64
	var revenue int64

	ctrl.DB.Model(&userModel.UserModel{}).Count(&totalUsers)
	ctrl.DB.Model(&userModel.UserModel{}).Where("role = ?", constants.RoleStudent).Count(&totalStudents)
	ctrl.DB.Model(&userModel.UserModel{}).Where("role = ?", constants.RoleTeacher).Count(&totalTeachers)
	ctrl.DB.Model(&bookingModel.BookingModel{}).Where("status = ?", bookingModel.BookingStatusPending).Count(&pendingBookings)
	ctrl.DB.Model(&lessonModel.LessonModel{}).Count(&totalLessons)
	ctrl.DB.Model(&lessonModel.LessonModel{}).Where("status = ?", lessonModel.LessonStatusCompleted).Count(&completedLessons)
	ctrl.DB.Model(&paymentModel.PaymentModel{}).Count(&totalPayments)
	ctrl.DB.Model(&paymentModel.PaymentModel{}).
		Where("status = ?", paymentModel.PaymentStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenue)

	return helper.Success(c, "OK", fiber.Map{
		"total_users":       totalUsers,
		"total_students":    totalStudents,
		"total_teachers":    totalTeachers,
		"pending_bookings":  pendingBookings,
		"total_lessons":     totalLessons,
		"completed_lessons": completedLessons,
		"total_payments":    totalPayments,
		"revenue":           revenue,
	})
}

/* =======================================================
   GET /api/a/users?role=&search=
======================================================= */

func (ctrl *AdminController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&userModel.UserModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	out := make([]*userDTO.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userDTO.FromModel(&users[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"users":      out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

/* =======================================================
   GET /api/a/bookings?status=
======================================================= */

func (ctrl *AdminController) ListBookings(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&bookingModel.BookingModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count bookings")
	}

	var bookings []bookingModel.BookingModel
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&bookings).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch bookings")
	}

	out := bookingDTO.FromModels(bookings)
	return helper.Success(c, "OK", fiber.Map{
		"bookings":   out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

/* =======================================================
   GET /api/a/lessons?status=&date=
======================================================= */

func (ctrl *AdminController) ListLessons(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&lessonModel.LessonModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count lessons")
	}

	var lessons []lessonModel.LessonModel
	if err := q.Order("date DESC, time DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&lessons).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch lessons")
	}

	out := lessonDTO.FromModels(lessons)
	return helper.Success(c, "OK", fiber.Map{
		"lessons":    out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

/* =======================================================
   GET /api/a/payments?status=&provider=
======================================================= */

func (ctrl *AdminController) ListPayments(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&paymentModel.PaymentModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if provider := c.Query("provider"); provider != "" {
		q = q.Where("provider = ?", provider)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count payments")
	}

	var payments []paymentModel.PaymentModel
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	out := paymentDTO.FromModels(payments)
	return helper.Success(c, "OK", fiber.Map{
		"payments":   out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

/* =======================================================
   POST /api/a/teachers
======================================================= */

func (ctrl *AdminController) CreateTeacher(c *fiber.Ctx) error {
	var req adminDTO.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	phone := authService.NormalizePhone(req.Phone)

	var exists int64
	if err := ctrl.DB.Model(&userModel.UserModel{}).Where("phone = ?", phone).Count(&exists).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check phone")
	}
	if exists > 0 {
		return helper.Error(c, fiber.StatusConflict, "Phone already registered")
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	price := req.PricePerLesson
	if price == 0 {
		price = 7000
	}

	user := &userModel.UserModel{
		Name:          req.Name,
		Phone:         phone,
		Password:      hashed,
		Role:          constants.RoleTeacher,
		PhoneVerified: true,
		IsActive:      true,
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		teacher := &teacherModel.TeacherModel{
			UserID:         user.ID,
			Bio:            req.Bio,
			Subjects:       req.Subjects,
			PricePerLesson: price,
			IsActive:       true,
		}
		return tx.Create(teacher).Error
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create teacher")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Teacher created", userDTO.FromModel(user))
}

/* =======================================================
   PATCH /api/a/users/:id
   DELETE /api/a/users/:id
======================================================= */

func (ctrl *AdminController) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var req adminDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctrl.DB.Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "User updated", userDTO.FromModel(&user))
}

func (ctrl *AdminController) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if adminID == userID {
		return helper.Error(c, fiber.StatusConflict, "You cannot delete your own account")
	}

	res := ctrl.DB.Where("id = ?", userID).Delete(&userModel.UserModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "User deleted", fiber.Map{"id": userID})
}

/* =======================================================
   PATCH /api/a/lessons/:id/status
   DELETE /api/a/lessons/:id
======================================================= */

func (ctrl *AdminController) UpdateLessonStatus(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	var req adminDTO.UpdateLessonStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	res := ctrl.DB.Model(&lessonModel.LessonModel{}).Where("id = ?", lessonID).Update("status", req.Status)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update lesson")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
	}
	return helper.Success(c, "Lesson updated", fiber.Map{"id": lessonID, "status": req.Status})
}

func (ctrl *AdminController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	res := ctrl.DB.Where("id = ?", lessonID).Delete(&lessonModel.LessonModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete lesson")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
	}
	return helper.Success(c, "Lesson deleted", fiber.Map{"id": lessonID})
}

/* =======================================================
   PATCH /api/a/bookings/:id/status
======================================================= */

func (ctrl *AdminController) UpdateBookingStatus(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid booking id")
	}

	var req adminDTO.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Message != "" {
		updates["message"] = req.Message
	}

	res := ctrl.DB.Model(&bookingModel.BookingModel{}).Where("id = ?", bookingID).Updates(updates)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update booking")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Booking not found")
	}
	return helper.Success(c, "Booking updated", fiber.Map{"id": bookingID, "status": req.Status})
}

/* =======================================================
   PATCH /api/a/payments/:id/status
======================================================= */

func (ctrl *AdminController) UpdatePaymentStatus(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
	}

	var req adminDTO.UpdatePaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	var payment paymentModel.PaymentModel
	if err := ctrl.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load payment")
	}

	if err := ctrl.DB.Model(&payment).Update("status", req.Status).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update payment")
	}
	payment.Status = req.Status
	return helper.Success(c, "Payment updated", paymentDTO.FromModel(&payment))
}
