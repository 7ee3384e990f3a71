package seeds

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	bookingModel "tutorku_backend/internals/features/bookings/model"
	bookingService "tutorku_backend/internals/features/bookings/service"
	paymentModel "tutorku_backend/internals/features/finance/payments/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
	teacherModel "tutorku_backend/internals/features/teachers/model"
	authService "tutorku_backend/internals/features/users/auth/service"
	userModel "tutorku_backend/internals/features/users/user/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// SeedDemoData creates a small working dataset: an admin, one teacher, two
// students, a confirmed lesson with its paid payment and a pending booking.
func SeedDemoData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		hash := func(pw string) string {
			h, err := authService.HashPassword(pw)
			if err != nil {
				return pw
			}
			return h
		}

		admin := &userModel.UserModel{
			Name:          "Администратор",
			Phone:         "77010000000",
			Email:         strPtr("admin@tutorku.kz"),
			Password:      hash("admin123"),
			Role:          constants.RoleAdmin,
			PhoneVerified: true,
			IsActive:      true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		teacherUser := &userModel.UserModel{
			Name:          "Гульнара Сатпаева",
			Phone:         "77011112233",
			Password:      hash("teacher123"),
			Role:          constants.RoleTeacher,
			PhoneVerified: true,
			IsActive:      true,
		}
		if err := tx.Create(teacherUser).Error; err != nil {
			return err
		}
		teacher := &teacherModel.TeacherModel{
			UserID:         teacherUser.ID,
			Bio:            "Преподаватель математики и физики, стаж 12 лет",
			Subjects:       pq.StringArray{constants.SubjectMath, constants.SubjectPhysics},
			PricePerLesson: 7000,
			IsActive:       true,
		}
		if err := tx.Create(teacher).Error; err != nil {
			return err
		}

		student1 := &userModel.UserModel{
			Name:          "Айдар Нурланов",
			Phone:         "77012345678",
			Password:      hash("student123"),
			Role:          constants.RoleStudent,
			Grade:         intPtr(8),
			PhoneVerified: true,
			IsActive:      true,
		}
		student2 := &userModel.UserModel{
			Name:          "Асель Каримова",
			Phone:         "77023456789",
			Password:      hash("student123"),
			Role:          constants.RoleStudent,
			Grade:         intPtr(9),
			PhoneVerified: true,
			IsActive:      true,
		}
		if err := tx.Create(student1).Error; err != nil {
			return err
		}
		if err := tx.Create(student2).Error; err != nil {
			return err
		}

		today := time.Now().Format("2006-01-02")

		lesson := &lessonModel.LessonModel{
			StudentID:   student1.ID,
			TeacherID:   teacherUser.ID,
			Subject:     constants.SubjectMath,
			Date:        today,
			Time:        "14:00",
			TimeStart:   "14:00:00",
			TimeEnd:     "15:00:00",
			Type:        lessonModel.LessonTypePaid,
			Status:      lessonModel.LessonStatusScheduled,
			MeetingRoom: bookingService.BuildMeetingRoom(constants.SubjectMath, today, "14:00"),
		}
		if err := tx.Create(lesson).Error; err != nil {
			return err
		}

		now := time.Now()
		payment := &paymentModel.PaymentModel{
			UserID:   student1.ID,
			LessonID: &lesson.ID,
			Amount:   7000,
			Currency: paymentModel.DefaultCurrency,
			Provider: paymentModel.PaymentProviderKaspi,
			Status:   paymentModel.PaymentStatusPaid,
			PaidAt:   &now,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		booking := &bookingModel.BookingModel{
			UserID:        &student2.ID,
			StudentName:   student2.Name,
			StudentPhone:  student2.Phone,
			Grade:         student2.Grade,
			Subject:       constants.SubjectPhysics,
			Date:          today,
			Time:          "16:00",
			ContactMethod: "telegram",
			Type:          bookingModel.BookingTypeTrial,
			Status:        bookingModel.BookingStatusPending,
		}
		return tx.Create(booking).Error
	})
}
