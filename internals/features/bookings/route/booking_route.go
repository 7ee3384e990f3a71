package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookingController "tutorku_backend/internals/features/bookings/controller"
)

// BookingPublicRoutes mounts the anonymous landing-form intake.
func BookingPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := bookingController.NewBookingController(db)
	r.Post("/bookings", ctrl.CreatePublic)
}

// BookingUserRoutes mounts the signed-in student endpoints on /api/u.
func BookingUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := bookingController.NewBookingController(db)
	r.Post("/bookings", ctrl.Create)
	r.Get("/bookings", ctrl.ListMine)
}

// BookingTeacherRoutes mounts the accept/reject decisions on /api/t.
func BookingTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := bookingController.NewBookingController(db)
	r.Post("/bookings/:id/accept", ctrl.Accept)
	r.Post("/bookings/:id/reject", ctrl.Reject)
}
