package stats

import (
	bookingRepo "questbook/database/repository/booking"
	statsRepo "questbook/database/repository/stats"
	"questbook/models"
)

// StatsService records and reports game session statistics.
type StatsService interface {
	Save(req SaveRequest) (*models.GameStats, error)
	GetUserSummary(userID string) (*UserSummary, error)
	GetUserHistory(userID string, limit int) ([]models.PlayedGame, error)
	GetAdminReport(filter models.GameStatsFilter) ([]models.AdminGameStatsRow, error)
}

// DefaultStatsService is the production implementation.
type DefaultStatsService struct {
	Repo     statsRepo.GameStatsRepository
	Bookings bookingRepo.BookingRepository
}

// SaveRequest is the payload the game server posts after a session.
type SaveRequest struct {
	UserID          string  `json:"userId" binding:"required"`
	LocationID      string  `json:"locationId" binding:"required"`
	GameID          string  `json:"gameId" binding:"required"`
	CorrectAnswers  int     `json:"correctAnswers"`
	TotalQuestions  int     `json:"totalQuestions" binding:"required"`
	AvgResponseTime float64 `json:"avgResponseTime"`
	CompletionTime  float64 `json:"completionTime"`
	Language        string  `json:"language"`
	Date            string  `json:"date"` // RFC 3339, defaults to now
}

// UserSummary is the full statistics view returned to a user.
type UserSummary struct {
	models.GameStatsSummary
	LastGames        []models.PlayedGame      `json:"lastGames"`
	FavoriteLocation *models.FavoriteLocation `json:"favoriteLocation"`
}
