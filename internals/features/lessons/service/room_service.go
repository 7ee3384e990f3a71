package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	model "tutorku_backend/internals/features/lessons/model"
	userModel "tutorku_backend/internals/features/users/user/model"
)

// RoomAccess is everything the lesson page needs to join the video room.
type RoomAccess struct {
	Room        string                 `json:"room"`
	Subject     string                 `json:"subject"`
	Date        string                 `json:"date"`
	TimeStart   string                 `json:"time_start"`
	TimeEnd     string                 `json:"time_end"`
	Role        string                 `json:"role"`
	DisplayName string                 `json:"display_name"`
	Config      map[string]interface{} `json:"config"`
}

var teacherToolbar = []string{
	"microphone", "camera", "desktop", "chat", "recording",
	"raisehand", "tileview", "fullscreen", "hangup",
}

var studentToolbar = []string{
	"microphone", "camera", "chat", "raisehand", "tileview", "fullscreen", "hangup",
}

func roomConfig(role string) map[string]interface{} {
	if role == constants.RoleTeacher || role == constants.RoleAdmin {
		return map[string]interface{}{
			"startWithAudioMuted": false,
			"moderator":           true,
			"toolbarButtons":      teacherToolbar,
		}
	}
	// Students join muted so a late join never interrupts the lesson.
	return map[string]interface{}{
		"startWithAudioMuted": true,
		"moderator":           false,
		"toolbarButtons":      studentToolbar,
	}
}

// GetRoomAccess authorizes a join request and returns the room with the
// caller's display name and role-specific embed hints. Admins may always
// enter; students only on the lesson's own date; teachers any time, so they
// can prepare the room. displayName comes from the token claim; older tokens
// have no name, so an empty value falls back to the users table.
func GetRoomAccess(db *gorm.DB, lessonID, userID uuid.UUID, role, displayName string) (*RoomAccess, error) {
	var lesson model.LessonModel
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}

	if role != constants.RoleAdmin && !lesson.IsParticipant(userID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You are not a participant of this lesson")
	}

	if lesson.Status == model.LessonStatusCanceled || lesson.Status == model.LessonStatusCompleted {
		return nil, fiber.NewError(fiber.StatusConflict, "Lesson is not active")
	}

	isTeacherSide := role == constants.RoleAdmin || lesson.TeacherID == userID
	if !isTeacherSide {
		today := time.Now().Format("2006-01-02")
		if lesson.Date != today {
			return nil, fiber.NewError(fiber.StatusForbidden, "Комната откроется в день урока")
		}
	}

	joinRole := constants.RoleStudent
	if isTeacherSide {
		joinRole = role
	}

	if displayName == "" {
		var user userModel.UserModel
		if err := db.Select("name").First(&user, "id = ?", userID).Error; err == nil {
			displayName = user.Name
		}
	}

	return &RoomAccess{
		Room:        lesson.MeetingRoom,
		Subject:     lesson.Subject,
		Date:        lesson.Date,
		TimeStart:   lesson.TimeStart,
		TimeEnd:     lesson.TimeEnd,
		Role:        joinRole,
		DisplayName: displayName,
		Config:      roomConfig(joinRole),
	}, nil
}
