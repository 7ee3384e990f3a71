package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "tutorku_backend/internals/features/users/user/controller"
)

// UserRoutes mounts the profile endpoints on /api/u.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)
	r.Get("/profile", ctrl.Profile)
	r.Patch("/profile", ctrl.UpdateProfile)
}
