package bookingRepo

import (
	"time"

	"questbook/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID; nil if absent.
	GetByID(id string) (*models.Booking, error)
	// GetByUser retrieves a user's bookings, newest slot first.
	GetByUser(userID string) ([]models.Booking, error)
	// GetConfirmedInRange retrieves confirmed bookings for a location whose
	// slot falls within [from, to] inclusive.
	GetConfirmedInRange(locationID string, from, to time.Time) ([]models.Booking, error)
	// CancelOwn flips a user's confirmed booking to cancelled and returns the
	// updated record; nil if no matching confirmed booking exists.
	CancelOwn(bookingID, userID string) (*models.Booking, error)
	// UpdateStatus sets a booking's status; nil if the booking is absent.
	UpdateStatus(bookingID, status string) (*models.Booking, error)
	// Find retrieves bookings matching the admin filter.
	Find(filter models.BookingFilter) ([]models.Booking, error)
	// CountByUser counts a user's bookings.
	CountByUser(userID string) (int64, error)
	// StatsByUser aggregates a user's booking summary.
	StatsByUser(userID string, now time.Time) (*models.BookingStats, error)
	// FavoriteLocationByUser returns the location a user books most often;
	// nil if the user has no bookings.
	FavoriteLocationByUser(userID string) (*models.FavoriteLocation, error)
}
