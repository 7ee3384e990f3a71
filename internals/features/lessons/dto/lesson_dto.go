package dto

import (
	"github.com/go-playground/validator/v10"

	model "tutorku_backend/internals/features/lessons/model"
)

var validate = validator.New()

/* ===================== Requests ===================== */

// CompleteLessonRequest carries the teacher's wrap-up for the student.
type CompleteLessonRequest struct {
	TeacherComment string `json:"teacher_comment" validate:"omitempty,max=2000"`
	Homework       string `json:"homework" validate:"omitempty,max=2000"`
}

func (r *CompleteLessonRequest) Validate() error {
	return validate.Struct(r)
}

/* ===================== Responses ===================== */

type LessonNoteResponse struct {
	TeacherComment string `json:"teacher_comment,omitempty"`
	Homework       string `json:"homework,omitempty"`
}

type LessonResponse struct {
	ID          string              `json:"id"`
	StudentID   string              `json:"student_id"`
	TeacherID   string              `json:"teacher_id"`
	Subject     string              `json:"subject"`
	Date        string              `json:"date"`
	Time        string              `json:"time"`
	TimeStart   string              `json:"time_start"`
	TimeEnd     string              `json:"time_end"`
	Type        string              `json:"type"`
	Status      string              `json:"status"`
	MeetingRoom string              `json:"meeting_room"`
	Note        *LessonNoteResponse `json:"note,omitempty"`
}

func FromModel(l *model.LessonModel, note *model.LessonNoteModel) *LessonResponse {
	resp := &LessonResponse{
		ID:          l.ID.String(),
		StudentID:   l.StudentID.String(),
		TeacherID:   l.TeacherID.String(),
		Subject:     l.Subject,
		Date:        l.Date,
		Time:        l.Time,
		TimeStart:   l.TimeStart,
		TimeEnd:     l.TimeEnd,
		Type:        l.Type,
		Status:      l.Status,
		MeetingRoom: l.MeetingRoom,
	}
	if note != nil {
		resp.Note = &LessonNoteResponse{
			TeacherComment: note.TeacherComment,
			Homework:       note.Homework,
		}
	}
	return resp
}

func FromModels(lessons []model.LessonModel) []*LessonResponse {
	out := make([]*LessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, FromModel(&lessons[i], nil))
	}
	return out
}
