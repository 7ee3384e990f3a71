package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teacherController "tutorku_backend/internals/features/teachers/controller"
)

// TeacherRoutes mounts the teacher portal endpoints on the /api/t group.
func TeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := teacherController.NewTeacherController(db)

	r.Get("/dashboard", ctrl.Dashboard)
	r.Get("/schedule", ctrl.GetSchedule)
	r.Put("/schedule", ctrl.UpdateSchedule)
	r.Patch("/profile", ctrl.UpdateProfile)
}

// TeacherPublicRoutes mounts the unauthenticated teacher listing.
func TeacherPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := teacherController.NewTeacherPublicController(db)
	r.Get("/teachers", ctrl.ListTeachers)
}
