package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	adminRoute "tutorku_backend/internals/features/admin/route"
	bookingRoute "tutorku_backend/internals/features/bookings/route"
	paymentRoute "tutorku_backend/internals/features/finance/payments/route"
	lessonRoute "tutorku_backend/internals/features/lessons/route"
	scheduleRoute "tutorku_backend/internals/features/schedule/route"
	teacherRoute "tutorku_backend/internals/features/teachers/route"
	authRoute "tutorku_backend/internals/features/users/auth/route"
	userRoute "tutorku_backend/internals/features/users/user/route"
	authMiddleware "tutorku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → no JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// USER → any signed-in account
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// TEACHER → teacher or admin
	log.Println("[INFO] Setting up TEACHER group...")
	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("the teacher portal"), constants.TeacherAndAbove),
	)

	// ADMIN
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("the admin portal"), constants.AdminOnly),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Schedule routes...")
	scheduleRoute.SchedulePublicRoutes(public, db)
	scheduleRoute.ScheduleTeacherRoutes(teacher, db)

	log.Println("[INFO] Mounting Booking routes...")
	bookingRoute.BookingPublicRoutes(public, db)
	bookingRoute.BookingUserRoutes(user, db)
	bookingRoute.BookingTeacherRoutes(teacher, db)

	log.Println("[INFO] Mounting Lesson routes...")
	lessonRoute.LessonUserRoutes(user, db)
	lessonRoute.LessonTeacherRoutes(teacher, db)

	log.Println("[INFO] Mounting Teacher routes...")
	teacherRoute.TeacherPublicRoutes(public, db)
	teacherRoute.TeacherRoutes(teacher, db)

	log.Println("[INFO] Mounting Payment routes...")
	paymentRoute.PaymentPublicRoutes(public, db)
	paymentRoute.PaymentUserRoutes(user, db)

	log.Println("[INFO] Mounting User routes...")
	userRoute.UserRoutes(user, db)

	log.Println("[INFO] Mounting Admin routes...")
	adminRoute.AdminRoutes(admin, db)
}
