package models

import "time"

// Booking statuses. Only confirmed bookings occupy a slot.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking represents a reservation of a one-hour slot at a location.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	LocationID string    `bson:"locationId" json:"locationId"`
	GameID     string    `bson:"gameId" json:"gameId"`
	Slot       time.Time `bson:"slot" json:"slot"` // top of an hour, UTC
	Players    int       `bson:"players" json:"players"`
	Language   string    `bson:"language" json:"language"`
	Email      string    `bson:"email,omitempty" json:"email,omitempty"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingStats is the aggregate summary returned to a user about their own
// bookings.
type BookingStats struct {
	TotalBookings    int        `bson:"totalBookings" json:"totalBookings"`
	UpcomingBookings int        `bson:"upcomingBookings" json:"upcomingBookings"`
	LastBookingDate  *time.Time `bson:"lastBookingDate,omitempty" json:"lastBookingDate,omitempty"`
}

// BookingFilter narrows admin booking listings.
type BookingFilter struct {
	LocationID string
	DateFrom   *time.Time
	DateTo     *time.Time
}
