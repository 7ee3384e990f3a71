package database

import (
	"log"

	"gorm.io/gorm"

	bookingModel "tutorku_backend/internals/features/bookings/model"
	paymentModel "tutorku_backend/internals/features/finance/payments/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	teacherModel "tutorku_backend/internals/features/teachers/model"
	authModel "tutorku_backend/internals/features/users/auth/model"
	userModel "tutorku_backend/internals/features/users/user/model"
)

// AutoMigrateAll syncs the schema for every feature model. Order matters
// only for readability; GORM resolves the tables independently.
func AutoMigrateAll(db *gorm.DB) {
	err := db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&authModel.RefreshTokenModel{},
		&authModel.VerificationCodeModel{},
		&teacherModel.TeacherModel{},
		&teacherModel.TeacherScheduleModel{},
		&bookingModel.BookingModel{},
		&lessonModel.LessonModel{},
		&lessonModel.LessonNoteModel{},
		&paymentModel.PaymentModel{},
	)
	if err != nil {
		log.Fatalf("❌ Auto-migration failed: %v", err)
	}
	log.Println("✅ Database schema migrated")
}
