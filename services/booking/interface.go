package booking

import (
	"time"

	bookingRepo "questbook/database/repository/booking"
	locationRepo "questbook/database/repository/location"
	userRepo "questbook/database/repository/user"
	"questbook/models"
	"questbook/services/mail"
)

// BookingService manages reservations.
type BookingService interface {
	Create(userID string, req CreateRequest) (*models.Booking, error)
	GetUserBookings(userID string) ([]models.Booking, error)
	Cancel(bookingID, userID string) (*models.Booking, error)
	GetUserStats(userID string) (*models.BookingStats, error)

	// Admin
	Find(filter models.BookingFilter) ([]models.Booking, error)
	SetStatus(bookingID, status string) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Locations locationRepo.LocationRepository
	Users     userRepo.UserRepository
	Mailer    mail.Mailer
	Now       func() time.Time // defaults to time.Now
}

// CreateRequest is the payload for creating a booking.
type CreateRequest struct {
	LocationID string    `json:"locationId" binding:"required"`
	GameID     string    `json:"gameId" binding:"required"`
	Slot       time.Time `json:"slot" binding:"required"`
	Players    int       `json:"players" binding:"required"`
	Language   string    `json:"language" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
}
