package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleController "tutorku_backend/internals/features/schedule/controller"
)

// SchedulePublicRoutes mounts the landing-form slot lookup.
func SchedulePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := scheduleController.NewScheduleController(db)
	r.Get("/schedule/available-times", ctrl.AvailableTimes)
}

// ScheduleTeacherRoutes mounts the teacher calendar views on /api/t.
func ScheduleTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := scheduleController.NewScheduleController(db)
	r.Get("/schedule/day", ctrl.Day)
	r.Get("/schedule/gaps", ctrl.Gaps)
}
