// Package availability computes bookable hourly slots for a location on a
// given date. All calendar arithmetic is done in UTC: the requested date is
// parsed as a UTC day, its weekday selects the working-hours entry, and the
// day span queried for bookings is the UTC day. Slots are derived values,
// recomputed on every call and never stored.
package availability

import (
	"errors"
	"fmt"
	"time"

	"questbook/models"
)

// Errors returned to callers; handlers map these to 400/404.
var (
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrLocationNotFound = errors.New("location not found")
)

const dateLayout = "2006-01-02"

// LocationSource is the read-side of the location store needed by the engine.
type LocationSource interface {
	GetByID(id string) (*models.Location, error)
}

// BookingSource is the read-side of the booking store needed by the engine.
type BookingSource interface {
	GetConfirmedInRange(locationID string, from, to time.Time) ([]models.Booking, error)
}

// Engine resolves slot availability from working hours and confirmed
// bookings. It holds no state between calls.
type Engine struct {
	Locations LocationSource
	Bookings  BookingSource
	Now       func() time.Time // defaults to time.Now
}

// NewEngine creates an Engine with the default clock.
func NewEngine(locations LocationSource, bookings BookingSource) *Engine {
	return &Engine{Locations: locations, Bookings: bookings, Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// GetAvailableSlots returns the ordered hourly slots for the location on the
// given date. A day without working hours yields an empty, non-error result.
// Slots at or before the current moment are never offered.
func (e *Engine) GetAvailableSlots(locationID, date string) ([]models.Slot, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}

	location, err := e.Locations.GetByID(locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location %s: %w", locationID, err)
	}
	if location == nil {
		return nil, ErrLocationNotFound
	}

	// Cutoff is captured once so every candidate in this call is filtered
	// against the same instant.
	slots := generateSlots(location, day, e.now())
	if len(slots) == 0 {
		return []models.Slot{}, nil
	}

	startOfDay := day
	endOfDay := day.Add(24*time.Hour - time.Millisecond)
	bookings, err := e.Bookings.GetConfirmedInRange(locationID, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for location %s: %w", locationID, err)
	}

	markBooked(slots, bookings)
	return slots, nil
}

// generateSlots builds the tentative hour grid for the location's working
// hours on the given UTC day, dropping past slots. Hours run over [from, to):
// a 10-11 entry produces exactly one slot at 10:00.
func generateSlots(location *models.Location, day time.Time, now time.Time) []models.Slot {
	wh, ok := location.HoursFor(int(day.Weekday()))
	if !ok {
		return nil
	}

	var slots []models.Slot
	for hour := wh.From; hour < wh.To; hour++ {
		candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
		if !candidate.After(now) {
			continue
		}
		slots = append(slots, models.Slot{Time: candidate, Available: true})
	}
	return slots
}

// markBooked flips slots whose instant exactly matches a confirmed booking.
// Matching is by instant, not hour-of-day, so a booking on another date can
// never shadow this day's slots.
func markBooked(slots []models.Slot, bookings []models.Booking) {
	if len(bookings) == 0 {
		return
	}
	booked := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		booked[b.Slot.UnixMilli()] = struct{}{}
	}
	for i := range slots {
		if _, taken := booked[slots[i].Time.UnixMilli()]; taken {
			slots[i].Available = false
		}
	}
}
