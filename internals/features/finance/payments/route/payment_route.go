package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "tutorku_backend/internals/features/finance/payments/controller"
)

// PaymentUserRoutes mounts the student payment endpoints on /api/u.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)
	r.Post("/payments", ctrl.Create)
	r.Get("/payments", ctrl.ListMine)
	r.Get("/payments/:id", ctrl.Detail)
}

// PaymentPublicRoutes mounts the provider callback. The auth middleware
// skips this path; the HMAC signature is the authentication.
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)
	r.Post("/payments/webhook", ctrl.Webhook)
}
