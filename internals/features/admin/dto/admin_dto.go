package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

var validate = validator.New()

/* ===================== Requests ===================== */

// CreateTeacherRequest provisions a teacher account with its profile in one
// step. Only admins may do this; the public register endpoint makes students.
type CreateTeacherRequest struct {
	Name           string         `json:"name" validate:"required,min=2,max=100"`
	Phone          string         `json:"phone" validate:"required,min=10,max=20"`
	Password       string         `json:"password" validate:"required,min=6,max=72"`
	Bio            string         `json:"bio" validate:"omitempty,max=2000"`
	Subjects       pq.StringArray `json:"subjects" validate:"required,min=1,dive,oneof=math physics chemistry russian english"`
	PricePerLesson int            `json:"price_per_lesson" validate:"omitempty,min=100,max=1000000"`
}

func (r *CreateTeacherRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateUserRequest changes role or activation of any account.
type UpdateUserRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=student teacher admin"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

// UpdatePaymentStatusRequest lets an admin settle disputes by hand.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid failed"`
}

func (r *UpdatePaymentStatusRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateLessonStatusRequest overrides a lesson state outside the normal
// teacher lifecycle (no-shows, disputes).
type UpdateLessonStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress completed canceled"`
}

func (r *UpdateLessonStatusRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateBookingStatusRequest overrides a booking state on behalf of a teacher.
type UpdateBookingStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=pending confirmed rejected"`
	Message string `json:"message" validate:"omitempty,max=500"`
}

func (r *UpdateBookingStatusRequest) Validate() error {
	return validate.Struct(r)
}
