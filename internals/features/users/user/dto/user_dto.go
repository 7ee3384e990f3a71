package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "tutorku_backend/internals/features/users/user/model"
)

var validate = validator.New()

/* =======================================================
   Requests
======================================================= */

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Grade *int    `json:"grade" validate:"omitempty,min=1,max=11"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validate.Struct(r)
}

/* =======================================================
   Responses
======================================================= */

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          *string   `json:"email,omitempty"`
	Role           string    `json:"role"`
	Grade          *int      `json:"grade,omitempty"`
	HasTrialLesson bool      `json:"has_trial_lesson"`
	PhoneVerified  bool      `json:"phone_verified"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(u *model.UserModel) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Phone:          u.Phone,
		Email:          u.Email,
		Role:           u.Role,
		Grade:          u.Grade,
		HasTrialLesson: u.HasTrialLesson,
		PhoneVerified:  u.PhoneVerified,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}
