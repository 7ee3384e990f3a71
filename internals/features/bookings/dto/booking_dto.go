package dto

import (
	"github.com/go-playground/validator/v10"

	model "tutorku_backend/internals/features/bookings/model"
)

var validate = validator.New()

/* ===================== Requests ===================== */

// CreateBookingRequest is shared by the anonymous landing form and the
// authenticated student form. Type may be left empty for signed-in students;
// the trial rule then decides it.
type CreateBookingRequest struct {
	StudentName   string `json:"student_name" validate:"required,min=2,max=100"`
	StudentPhone  string `json:"student_phone" validate:"required,min=10,max=20"`
	Grade         *int   `json:"grade" validate:"omitempty,min=1,max=11"`
	Subject       string `json:"subject" validate:"required,oneof=math physics chemistry russian english"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time" validate:"required,len=5"`
	ContactMethod string `json:"contact_method" validate:"omitempty,oneof=phone whatsapp telegram"`
	Comments      string `json:"comments" validate:"omitempty,max=1000"`
	Type          string `json:"type" validate:"omitempty,oneof=trial paid"`
}

func (r *CreateBookingRequest) Validate() error {
	return validate.Struct(r)
}

// RejectBookingRequest carries the optional reason shown to the student.
type RejectBookingRequest struct {
	Message string `json:"message" validate:"omitempty,max=500"`
}

func (r *RejectBookingRequest) Validate() error {
	return validate.Struct(r)
}

/* ===================== Responses ===================== */

type BookingResponse struct {
	ID            string `json:"id"`
	StudentName   string `json:"student_name"`
	StudentPhone  string `json:"student_phone"`
	Grade         *int   `json:"grade,omitempty"`
	Subject       string `json:"subject"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	ContactMethod string `json:"contact_method,omitempty"`
	Comments      string `json:"comments,omitempty"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func FromModel(b *model.BookingModel) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID.String(),
		StudentName:   b.StudentName,
		StudentPhone:  b.StudentPhone,
		Grade:         b.Grade,
		Subject:       b.Subject,
		Date:          b.Date,
		Time:          b.Time,
		ContactMethod: b.ContactMethod,
		Comments:      b.Comments,
		Type:          b.Type,
		Status:        b.Status,
		Message:       b.Message,
		CreatedAt:     b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func FromModels(bookings []model.BookingModel) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, FromModel(&bookings[i]))
	}
	return out
}
