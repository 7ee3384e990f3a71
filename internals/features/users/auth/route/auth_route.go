package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "tutorku_backend/internals/features/users/auth/controller"
	"tutorku_backend/internals/middlewares"
	authMiddleware "tutorku_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public auth endpoints plus the authed logout/me pair.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)
	verifyCtrl := authController.NewVerificationController(db)

	grp := app.Group("/api/auth")
	grp.Post("/register", ctrl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	grp.Post("/refresh-token", ctrl.RefreshToken)
	grp.Post("/send-code", middlewares.SendCodeRateLimiter(), verifyCtrl.SendCode)
	grp.Post("/verify-code", verifyCtrl.VerifyCode)

	authed := grp.Group("", authMiddleware.AuthMiddleware(db))
	authed.Post("/logout", ctrl.Logout)
	authed.Get("/me", ctrl.Me)
}
