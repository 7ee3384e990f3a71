package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tutorku_backend/internals/features/bookings/dto"
	bookingService "tutorku_backend/internals/features/bookings/service"
	helper "tutorku_backend/internals/helpers"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

/* =======================================================
   POST /api/public/bookings
   Anonymous landing-form intake.
======================================================= */

func (ctrl *BookingController) CreatePublic(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	booking, err := bookingService.CreateBooking(ctrl.DB, &req, nil)
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Заявка принята", dto.FromModel(booking))
}

/* =======================================================
   POST /api/u/bookings
======================================================= */

func (ctrl *BookingController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	booking, err := bookingService.CreateBooking(ctrl.DB, &req, &userID)
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Заявка принята", dto.FromModel(booking))
}

/* =======================================================
   GET /api/u/bookings
======================================================= */

func (ctrl *BookingController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	bookings, err := bookingService.ListBookingsForUser(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch bookings")
	}
	return helper.Success(c, "OK", dto.FromModels(bookings))
}

/* =======================================================
   POST /api/t/bookings/:id/accept
   POST /api/t/bookings/:id/reject
======================================================= */

func parseBookingID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid booking id")
	}
	return id, nil
}

func (ctrl *BookingController) Accept(c *fiber.Ctx) error {
	teacherUserID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	bookingID, err := parseBookingID(c)
	if err != nil {
		return err
	}

	lesson, booking, err := bookingService.AcceptBooking(ctrl.DB, bookingID, teacherUserID)
	if err != nil {
		return err
	}
	return helper.Success(c, "Заявка подтверждена", fiber.Map{
		"booking": dto.FromModel(booking),
		"lesson":  lesson,
	})
}

func (ctrl *BookingController) Reject(c *fiber.Ctx) error {
	teacherUserID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	bookingID, err := parseBookingID(c)
	if err != nil {
		return err
	}

	var req dto.RejectBookingRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	booking, err := bookingService.RejectBooking(ctrl.DB, bookingID, teacherUserID, req.Message)
	if err != nil {
		return err
	}
	return helper.Success(c, "Заявка отклонена", dto.FromModel(booking))
}
