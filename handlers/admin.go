package handlers

import (
	"errors"
	"net/http"

	"questbook/models"
	"questbook/services/booking"
	"questbook/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Users    user.UserService
	Bookings booking.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService, bs booking.BookingService) *AdminHandler {
	return &AdminHandler{Users: us, Bookings: bs}
}

// GetAllUsersHandler returns all users (with sensitive fields excluded).
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.Users.GetAllUsers()
	if err != nil {
		zap.L().Error("Failed to fetch all users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// ListAllBookingsHandler returns bookings across users, with optional
// locationId/dateFrom/dateTo filters.
func (ah *AdminHandler) ListAllBookingsHandler(c *gin.Context) {
	logger := getLogger(c)

	filter := models.BookingFilter{LocationID: c.Query("locationId")}
	var ok bool
	if filter.DateFrom, ok = parseDateQuery(c, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = parseDateQuery(c, "dateTo"); !ok {
		return
	}

	bookings, err := ah.Bookings.Find(filter)
	if err != nil {
		logger.Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatusHandler sets any booking's status.
func (ah *AdminHandler) UpdateBookingStatusHandler(c *gin.Context) {
	logger := getLogger(c)
	bookingID := c.Param("bookingId")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := ah.Bookings.SetStatus(bookingID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update booking status",
				zap.String("bookingId", bookingID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}
