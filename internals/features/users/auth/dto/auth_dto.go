package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"

	userDTO "tutorku_backend/internals/features/users/user/dto"
)

var validate = validator.New()

/* =======================================================
   Requests
======================================================= */

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Phone    string  `json:"phone" validate:"required,min=10,max=20"`
	Password string  `json:"password" validate:"required,min=6"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     string  `json:"role" validate:"omitempty,oneof=student teacher admin"`
	Grade    *int    `json:"grade" validate:"omitempty,min=1,max=11"`

	// Teachers only
	Bio            string         `json:"bio"`
	Subjects       pq.StringArray `json:"subjects" validate:"omitempty,dive,oneof=math physics chemistry russian english"`
	PricePerLesson int            `json:"price_per_lesson" validate:"omitempty,min=0"`
}

func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher admin"`
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

type SendCodeRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=20"`
}

func (r *SendCodeRequest) Validate() error {
	return validate.Struct(r)
}

type VerifyCodeRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=20"`
	Code  string `json:"code" validate:"required,len=4,numeric"`
}

func (r *VerifyCodeRequest) Validate() error {
	return validate.Struct(r)
}

/* =======================================================
   Responses
======================================================= */

type LoginResponse struct {
	AccessToken string                `json:"access_token"`
	User        *userDTO.UserResponse `json:"user"`
	Teacher     interface{}           `json:"teacher,omitempty"`
}
