package handlers

import (
	"errors"
	"net/http"

	locationRepo "questbook/database/repository/location"
	"questbook/models"
	"questbook/services/availability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocationHandler exposes the location catalog and the slot availability
// endpoint.
type LocationHandler struct {
	Locations    locationRepo.LocationRepository
	Availability *availability.Engine
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(lr locationRepo.LocationRepository, engine *availability.Engine) *LocationHandler {
	return &LocationHandler{Locations: lr, Availability: engine}
}

// ListLocationsHandler returns all active locations.
func (lh *LocationHandler) ListLocationsHandler(c *gin.Context) {
	logger := getLogger(c)

	locations, err := lh.Locations.GetActive()
	if err != nil {
		logger.Error("Failed to list locations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}

	c.JSON(http.StatusOK, locations)
}

// GetLocationHandler returns one location by id.
func (lh *LocationHandler) GetLocationHandler(c *gin.Context) {
	logger := getLogger(c)
	locationID := c.Param("locationId")

	location, err := lh.Locations.GetByID(locationID)
	if err != nil {
		logger.Error("Failed to fetch location", zap.String("locationId", locationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch location"})
		return
	}
	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	c.JSON(http.StatusOK, location)
}

// GetSlotsHandler computes the hourly availability grid for one day.
func (lh *LocationHandler) GetSlotsHandler(c *gin.Context) {
	logger := getLogger(c)
	locationID := c.Param("locationId")
	date := c.Query("date")

	slots, err := lh.Availability.GetAvailableSlots(locationID, date)
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

// CreateLocationHandler registers a new location.
func (lh *LocationHandler) CreateLocationHandler(c *gin.Context) {
	logger := getLogger(c)

	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if location.Name == "" || location.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and address are required"})
		return
	}

	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	for i := range location.Games {
		if location.Games[i].ID == "" {
			location.Games[i].ID = uuid.New().String()
		}
	}
	location.IsActive = true

	if err := lh.Locations.Create(&location); err != nil {
		logger.Error("Failed to create location", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}

	c.JSON(http.StatusCreated, location)
}

// UpdateLocationHandler replaces an existing location's editable fields.
func (lh *LocationHandler) UpdateLocationHandler(c *gin.Context) {
	logger := getLogger(c)
	locationID := c.Param("locationId")

	existing, err := lh.Locations.GetByID(locationID)
	if err != nil {
		logger.Error("Failed to fetch location", zap.String("locationId", locationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch location"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	location.ID = locationID
	location.CreatedAt = existing.CreatedAt
	for i := range location.Games {
		if location.Games[i].ID == "" {
			location.Games[i].ID = uuid.New().String()
		}
	}

	if err := lh.Locations.Update(&location); err != nil {
		logger.Error("Failed to update location", zap.String("locationId", locationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}

	c.JSON(http.StatusOK, location)
}
