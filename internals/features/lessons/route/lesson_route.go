package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lessonController "tutorku_backend/internals/features/lessons/controller"
)

// LessonUserRoutes mounts the student-facing lesson endpoints on /api/u.
func LessonUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := lessonController.NewLessonController(db)
	r.Get("/lessons", ctrl.ListMine)
	r.Get("/lessons/:id", ctrl.Detail)
	r.Get("/lessons/:id/room", ctrl.Room)
}

// LessonTeacherRoutes mounts the teacher list and lifecycle transitions on /api/t.
func LessonTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := lessonController.NewLessonController(db)
	r.Get("/lessons", ctrl.ListMine)
	r.Post("/lessons/:id/start", ctrl.Start)
	r.Post("/lessons/:id/complete", ctrl.Complete)
	r.Post("/lessons/:id/cancel", ctrl.Cancel)
}
