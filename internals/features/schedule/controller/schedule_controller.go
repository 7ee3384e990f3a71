package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	scheduleService "tutorku_backend/internals/features/schedule/service"
	helper "tutorku_backend/internals/helpers"
)

type ScheduleController struct {
	DB *gorm.DB
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db}
}

const dateLayout = "2006-01-02"

func parseDateParam(c *fiber.Ctx) (string, error) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "date is required (YYYY-MM-DD)")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return date, nil
}

func parseSubjectParam(c *fiber.Ctx) (string, error) {
	subject := strings.TrimSpace(c.Query("subject"))
	if subject != "" && !constants.IsValidSubject(subject) {
		return "", fiber.NewError(fiber.StatusBadRequest, "unknown subject")
	}
	return subject, nil
}

/* =======================================================
   GET /api/public/schedule/available-times?date=&subject=
======================================================= */

// AvailableTimes lists the free slots for a date. On a storage failure the
// landing form must stay usable, so it degrades to the full catalog instead
// of an error page.
func (ctrl *ScheduleController) AvailableTimes(c *fiber.Ctx) error {
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	subject, err := parseSubjectParam(c)
	if err != nil {
		return err
	}

	times, err := scheduleService.AvailableTimes(ctrl.DB, date, subject)
	if err != nil {
		log.Printf("[ERROR] available-times fallback for %s: %v", date, err)
		times = append([]string(nil), scheduleService.SlotCatalog...)
	}

	free := make(map[string]bool, len(times))
	for _, t := range times {
		free[t] = true
	}
	occupied := make([]string, 0)
	for _, slot := range scheduleService.SlotCatalog {
		if !free[slot] {
			occupied = append(occupied, slot)
		}
	}

	return helper.Success(c, "OK", fiber.Map{
		"date":            date,
		"available_times": times,
		"occupied_times":  occupied,
		"all_time_slots":  scheduleService.SlotCatalog,
	})
}

/* =======================================================
   GET /api/t/schedule/day?date=&subject=
======================================================= */

func (ctrl *ScheduleController) Day(c *fiber.Ctx) error {
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	subject, err := parseSubjectParam(c)
	if err != nil {
		return err
	}

	slots, err := scheduleService.DaySchedule(ctrl.DB, date, subject)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load day schedule")
	}
	return helper.Success(c, "OK", fiber.Map{
		"date":  date,
		"slots": slots,
	})
}

/* =======================================================
   GET /api/t/schedule/gaps?from=&days=&subject=
======================================================= */

// Gaps reports runs of consecutive free slots over a short horizon so a
// teacher can spot where to move lessons. Defaults to 7 days from today.
func (ctrl *ScheduleController) Gaps(c *fiber.Ctx) error {
	from := strings.TrimSpace(c.Query("from"))
	if from == "" {
		from = time.Now().Format(dateLayout)
	}
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	days := c.QueryInt("days", 7)
	if days < 1 || days > 31 {
		return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 31")
	}
	subject, err := parseSubjectParam(c)
	if err != nil {
		return err
	}

	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(dateLayout))
	}

	gaps, err := scheduleService.FindGaps(ctrl.DB, dates, subject)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute gaps")
	}
	return helper.Success(c, "OK", fiber.Map{
		"from": from,
		"days": days,
		"gaps": gaps,
	})
}
