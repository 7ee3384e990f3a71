package service

import (
	"fmt"

	"gorm.io/gorm"

	bookingModel "tutorku_backend/internals/features/bookings/model"
	lessonModel "tutorku_backend/internals/features/lessons/model"
)

// SlotCatalog is the fixed one-hour grid the whole platform books against.
// The 13:00 hour is deliberately absent (lunch break).
var SlotCatalog = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
}

// ErrLookup wraps a storage failure during an availability query so callers
// can distinguish it from an empty result and apply their own fallback.
type ErrLookup struct {
	Op  string
	Err error
}

func (e *ErrLookup) Error() string {
	return fmt.Sprintf("availability lookup %s: %v", e.Op, e.Err)
}

func (e *ErrLookup) Unwrap() error {
	return e.Err
}

/* =======================================================
   Occupancy
======================================================= */

// occupiedTimes collects the slot starts taken on a date, across every
// teacher (single shared calendar). A slot is occupied by bookings still in
// play (pending, confirmed) and by lessons not yet finished (scheduled,
// in_progress). When subject is non-empty, only rows for that subject count.
func occupiedTimes(db *gorm.DB, date, subject string) (map[string]bool, error) {
	occupied := make(map[string]bool)

	bq := db.Model(&bookingModel.BookingModel{}).
		Where("date = ? AND status IN ?", date, bookingModel.BlockingStatuses)
	if subject != "" {
		bq = bq.Where("subject = ?", subject)
	}
	var bookingTimes []string
	if err := bq.Pluck("time", &bookingTimes).Error; err != nil {
		return nil, &ErrLookup{Op: "bookings", Err: err}
	}
	for _, t := range bookingTimes {
		occupied[t] = true
	}

	lq := db.Model(&lessonModel.LessonModel{}).
		Where("date = ? AND status IN ?", date, lessonModel.BlockingStatuses)
	if subject != "" {
		lq = lq.Where("subject = ?", subject)
	}
	var lessonTimes []string
	if err := lq.Pluck("time", &lessonTimes).Error; err != nil {
		return nil, &ErrLookup{Op: "lessons", Err: err}
	}
	for _, t := range lessonTimes {
		occupied[t] = true
	}

	return occupied, nil
}

/* =======================================================
   Queries
======================================================= */

// AvailableTimes returns the free slots for a date, in catalog order.
// Subject may be empty to consider occupancy across all subjects.
func AvailableTimes(db *gorm.DB, date, subject string) ([]string, error) {
	occupied, err := occupiedTimes(db, date, subject)
	if err != nil {
		return nil, err
	}
	free := make([]string, 0, len(SlotCatalog))
	for _, slot := range SlotCatalog {
		if !occupied[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// IsSlotFree reports whether a single slot is still open. Used to re-check
// right before an insert so two requests cannot claim the same hour.
func IsSlotFree(db *gorm.DB, date, timeStart, subject string) (bool, error) {
	occupied, err := occupiedTimes(db, date, subject)
	if err != nil {
		return false, err
	}
	return !occupied[timeStart], nil
}

// SlotStatus is one catalog entry with its occupancy for a day view.
type SlotStatus struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DaySchedule returns the full catalog with per-slot occupancy for a date.
func DaySchedule(db *gorm.DB, date, subject string) ([]SlotStatus, error) {
	occupied, err := occupiedTimes(db, date, subject)
	if err != nil {
		return nil, err
	}
	out := make([]SlotStatus, 0, len(SlotCatalog))
	for _, slot := range SlotCatalog {
		out = append(out, SlotStatus{Time: slot, Available: !occupied[slot]})
	}
	return out, nil
}

// Gap is a run of consecutive free slots on one date. Duration is in hours.
type Gap struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

// FindGaps scans a range of dates and groups consecutive free catalog slots
// into gaps. Adjacency is by catalog position, so 12:00 and 14:00 are
// consecutive even though the clock hours are not.
func FindGaps(db *gorm.DB, dates []string, subject string) ([]Gap, error) {
	gaps := make([]Gap, 0)
	for _, date := range dates {
		occupied, err := occupiedTimes(db, date, subject)
		if err != nil {
			return nil, err
		}
		runStart := -1
		for i := 0; i <= len(SlotCatalog); i++ {
			free := i < len(SlotCatalog) && !occupied[SlotCatalog[i]]
			switch {
			case free && runStart < 0:
				runStart = i
			case !free && runStart >= 0:
				gaps = append(gaps, Gap{
					Date:     date,
					Time:     SlotCatalog[runStart],
					Duration: i - runStart,
				})
				runStart = -1
			}
		}
	}
	return gaps, nil
}
