package locationRepo

import "questbook/models"

// LocationRepository defines methods for location data access.
type LocationRepository interface {
	// GetByID retrieves a location by its unique ID; nil if absent.
	GetByID(id string) (*models.Location, error)
	// GetActive retrieves all active locations.
	GetActive() ([]models.Location, error)
	// Create inserts a new location record.
	Create(location *models.Location) error
	// Update modifies an existing location record.
	Update(location *models.Location) error
}
