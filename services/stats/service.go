package stats

import (
	"errors"
	"fmt"
	"time"

	"questbook/models"
	"questbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidStats flags a stats payload that fails validation.
var ErrInvalidStats = errors.New("invalid game stats payload")

const (
	recentGamesLimit = 5
	historyLimit     = 10
)

// Save validates and stores one game session record. Date defaults to now
// when the game server omits it.
func (s *DefaultStatsService) Save(req SaveRequest) (*models.GameStats, error) {
	logger := utils.GetLogger()

	if req.TotalQuestions < 1 {
		return nil, fmt.Errorf("%w: totalQuestions must be at least 1", ErrInvalidStats)
	}
	if req.CorrectAnswers < 0 || req.CorrectAnswers > req.TotalQuestions {
		return nil, fmt.Errorf("%w: correctAnswers out of range", ErrInvalidStats)
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date", ErrInvalidStats)
		}
		date = parsed
	}

	language := req.Language
	if language == "" {
		language = "ru"
	}

	record := &models.GameStats{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		LocationID:      req.LocationID,
		GameID:          req.GameID,
		CorrectAnswers:  req.CorrectAnswers,
		TotalQuestions:  req.TotalQuestions,
		AvgResponseTime: req.AvgResponseTime,
		CompletionTime:  req.CompletionTime,
		Language:        language,
		Date:            date,
	}

	if err := s.Repo.Create(record); err != nil {
		logger.Error("Save: failed to store game stats", zap.Error(err))
		return nil, fmt.Errorf("failed to save game stats: %w", err)
	}
	return record, nil
}

// GetUserSummary assembles the user's overall numbers, their recent games
// and their most-booked location. The three reads are independent.
func (s *DefaultStatsService) GetUserSummary(userID string) (*UserSummary, error) {
	summary, err := s.Repo.SummaryByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats summary: %w", err)
	}

	lastGames, err := s.Repo.RecentByUser(userID, recentGamesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent games: %w", err)
	}

	favorite, err := s.Bookings.FavoriteLocationByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve favorite location: %w", err)
	}

	if lastGames == nil {
		lastGames = []models.PlayedGame{}
	}
	return &UserSummary{
		GameStatsSummary: *summary,
		LastGames:        lastGames,
		FavoriteLocation: favorite,
	}, nil
}

// GetUserHistory lists the user's recent games, newest first.
func (s *DefaultStatsService) GetUserHistory(userID string, limit int) ([]models.PlayedGame, error) {
	if limit <= 0 {
		limit = historyLimit
	}
	games, err := s.Repo.RecentByUser(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game history: %w", err)
	}
	return games, nil
}

// GetAdminReport produces the filtered, joined stats report.
func (s *DefaultStatsService) GetAdminReport(filter models.GameStatsFilter) ([]models.AdminGameStatsRow, error) {
	rows, err := s.Repo.AdminReport(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats report: %w", err)
	}
	return rows, nil
}
