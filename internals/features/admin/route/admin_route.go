package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminController "tutorku_backend/internals/features/admin/controller"
)

// AdminRoutes mounts the back-office endpoints on the /api/a group. Role
// enforcement happens on the group, not here.
func AdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := adminController.NewAdminController(db)

	r.Get("/stats", ctrl.Stats)
	r.Get("/reports", ctrl.Reports)

	r.Get("/users", ctrl.ListUsers)
	r.Patch("/users/:id", ctrl.UpdateUser)
	r.Delete("/users/:id", ctrl.DeleteUser)

	r.Post("/teachers", ctrl.CreateTeacher)

	r.Get("/bookings", ctrl.ListBookings)
	r.Patch("/bookings/:id/status", ctrl.UpdateBookingStatus)

	r.Get("/lessons", ctrl.ListLessons)
	r.Patch("/lessons/:id/status", ctrl.UpdateLessonStatus)
	r.Delete("/lessons/:id", ctrl.DeleteLesson)

	r.Get("/payments", ctrl.ListPayments)
	r.Patch("/payments/:id/status", ctrl.UpdatePaymentStatus)
}
