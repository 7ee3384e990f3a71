package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"

	model "tutorku_backend/internals/features/teachers/model"
)

var validate = validator.New()

/* =======================================================
   Requests
======================================================= */

type ScheduleItem struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	TimeStart string `json:"time_start" validate:"required,len=5"`
	TimeEnd   string `json:"time_end" validate:"required,len=5"`
}

type UpdateScheduleRequest struct {
	Schedule []ScheduleItem `json:"schedule" validate:"dive"`
}

func (r *UpdateScheduleRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateTeacherProfileRequest struct {
	Bio            *string        `json:"bio"`
	Subjects       pq.StringArray `json:"subjects" validate:"omitempty,dive,oneof=math physics chemistry russian english"`
	PricePerLesson *int           `json:"price_per_lesson" validate:"omitempty,min=0"`
}

func (r *UpdateTeacherProfileRequest) Validate() error {
	return validate.Struct(r)
}

/* =======================================================
   Responses
======================================================= */

type TeacherPublicResponse struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Bio            string         `json:"bio"`
	Subjects       pq.StringArray `json:"subjects"`
	PricePerLesson int            `json:"price_per_lesson"`
}

func FromModelPublic(t *model.TeacherModel, name string) *TeacherPublicResponse {
	return &TeacherPublicResponse{
		ID:             t.ID,
		Name:           name,
		Bio:            t.Bio,
		Subjects:       t.Subjects,
		PricePerLesson: t.PricePerLesson,
	}
}
