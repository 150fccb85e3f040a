package statsRepo

import "questbook/models"

// GameStatsRepository defines methods for game statistics data access.
type GameStatsRepository interface {
	// Create inserts a new game stats record.
	Create(stats *models.GameStats) error
	// SummaryByUser aggregates a user's overall play statistics.
	SummaryByUser(userID string) (*models.GameStatsSummary, error)
	// RecentByUser retrieves a user's most recent games, joined with
	// location names, newest first.
	RecentByUser(userID string, limit int) ([]models.PlayedGame, error)
	// AdminReport retrieves all matching game stats rows joined with user
	// and location details, newest first.
	AdminReport(filter models.GameStatsFilter) ([]models.AdminGameStatsRow, error)
}
