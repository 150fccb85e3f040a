package handlers

import (
	"errors"
	"net/http"

	"questbook/models"
	"questbook/services/availability"
	"questbook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes reservation operations.
type BookingHandler struct {
	Bookings     booking.BookingService
	Availability *availability.Engine
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs booking.BookingService, engine *availability.Engine) *BookingHandler {
	return &BookingHandler{Bookings: bs, Availability: engine}
}

// CreateBookingHandler records a confirmed booking for the authenticated user.
func (bh *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := bh.Bookings.Create(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrPastSlot),
			errors.Is(err, booking.ErrInvalidPlayers),
			errors.Is(err, booking.ErrLanguageUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrLocationNotFound),
			errors.Is(err, booking.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create booking", zap.String("userId", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListBookingsHandler returns the user's bookings, newest slot first.
func (bh *BookingHandler) ListBookingsHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := bh.Bookings.GetUserBookings(userID)
	if err != nil {
		logger.Error("Failed to list bookings", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	c.JSON(http.StatusOK, bookings)
}

// CancelBookingHandler cancels the user's own confirmed booking.
func (bh *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	bookingID := c.Param("bookingId")

	cancelled, err := bh.Bookings.Cancel(bookingID, userID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to cancel booking",
			zap.String("userId", userID), zap.String("bookingId", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, cancelled)
}

// BookingStatsHandler aggregates the user's booking totals.
func (bh *BookingHandler) BookingStatsHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := bh.Bookings.GetUserStats(userID)
	if err != nil {
		logger.Error("Failed to aggregate booking stats", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// BookingSlotsHandler serves the availability grid under the bookings
// surface. Same computation as the locations endpoint.
func (bh *BookingHandler) BookingSlotsHandler(c *gin.Context) {
	logger := getLogger(c)
	locationID := c.Param("locationId")
	date := c.Query("date")

	slots, err := bh.Availability.GetAvailableSlots(locationID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		case errors.Is(err, availability.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		default:
			logger.Error("Failed to compute slots",
				zap.String("locationId", locationID), zap.String("date", date), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability"})
		}
		return
	}

	c.JSON(http.StatusOK, slots)
}
