package stats

import (
	"testing"
	"time"

	bookingRepo "questbook/database/repository/booking"
	"questbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatsRepo struct{ mock.Mock }

// MockBookingRepo embeds the repository interface; only the methods the
// stats service touches are stubbed.
type MockBookingRepo struct {
	mock.Mock
	bookingRepo.BookingRepository
}

func (m *MockStatsRepo) Create(record *models.GameStats) error {
	return m.Called(record).Error(0)
}

func (m *MockStatsRepo) SummaryByUser(userID string) (*models.GameStatsSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameStatsSummary), args.Error(1)
}

func (m *MockStatsRepo) RecentByUser(userID string, limit int) ([]models.PlayedGame, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayedGame), args.Error(1)
}

func (m *MockStatsRepo) AdminReport(filter models.GameStatsFilter) ([]models.AdminGameStatsRow, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminGameStatsRow), args.Error(1)
}

func (m *MockBookingRepo) FavoriteLocationByUser(userID string) (*models.FavoriteLocation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoriteLocation), args.Error(1)
}

func validSave() SaveRequest {
	return SaveRequest{
		UserID:         "user-1",
		LocationID:     "loc-1",
		GameID:         "game-1",
		CorrectAnswers: 7,
		TotalQuestions: 10,
		Language:       "en",
	}
}

func TestSaveStats(t *testing.T) {
	repo := new(MockStatsRepo)
	svc := &DefaultStatsService{Repo: repo}

	repo.On("Create", mock.AnythingOfType("*models.GameStats")).Return(nil)

	record, err := svc.Save(validSave())
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 7, record.CorrectAnswers)
	assert.Equal(t, "en", record.Language)
	assert.False(t, record.Date.IsZero())
	assert.InDelta(t, 70.0, record.Accuracy(), 0.001)
}

func TestSaveStatsValidation(t *testing.T) {
	svc := &DefaultStatsService{Repo: new(MockStatsRepo)}

	tests := []struct {
		name   string
		mutate func(*SaveRequest)
	}{
		{"zero questions", func(r *SaveRequest) { r.TotalQuestions = 0 }},
		{"negative correct", func(r *SaveRequest) { r.CorrectAnswers = -1 }},
		{"correct above total", func(r *SaveRequest) { r.CorrectAnswers = 11 }},
		{"malformed date", func(r *SaveRequest) { r.Date = "03.06.2030" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSave()
			tt.mutate(&req)

			_, err := svc.Save(req)
			assert.ErrorIs(t, err, ErrInvalidStats)
		})
	}
}

func TestSaveStatsParsesExplicitDate(t *testing.T) {
	repo := new(MockStatsRepo)
	svc := &DefaultStatsService{Repo: repo}
	repo.On("Create", mock.AnythingOfType("*models.GameStats")).Return(nil)

	req := validSave()
	req.Date = "2030-06-03T12:00:00Z"

	record, err := svc.Save(req)
	require.NoError(t, err)
	assert.True(t, record.Date.Equal(time.Date(2030, 6, 3, 12, 0, 0, 0, time.UTC)))
}

func TestSaveStatsDefaultsLanguage(t *testing.T) {
	repo := new(MockStatsRepo)
	svc := &DefaultStatsService{Repo: repo}
	repo.On("Create", mock.AnythingOfType("*models.GameStats")).Return(nil)

	req := validSave()
	req.Language = ""

	record, err := svc.Save(req)
	require.NoError(t, err)
	assert.Equal(t, "ru", record.Language)
}

func TestGetUserSummary(t *testing.T) {
	repo := new(MockStatsRepo)
	bookings := new(MockBookingRepo)
	svc := &DefaultStatsService{Repo: repo, Bookings: bookings}

	repo.On("SummaryByUser", "user-1").Return(&models.GameStatsSummary{
		TotalGames:  3,
		AvgAccuracy: 66.67,
	}, nil)
	repo.On("RecentByUser", "user-1", recentGamesLimit).Return([]models.PlayedGame{
		{GameID: "game-1", LocationName: "Old Town Cellar"},
	}, nil)
	bookings.On("FavoriteLocationByUser", "user-1").Return(&models.FavoriteLocation{
		LocationID:   "loc-1",
		LocationName: "Old Town Cellar",
		GamesCount:   2,
	}, nil)

	summary, err := svc.GetUserSummary("user-1")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalGames)
	assert.Len(t, summary.LastGames, 1)
	require.NotNil(t, summary.FavoriteLocation)
	assert.Equal(t, "Old Town Cellar", summary.FavoriteLocation.LocationName)
}

func TestGetUserSummaryNoBookings(t *testing.T) {
	repo := new(MockStatsRepo)
	bookings := new(MockBookingRepo)
	svc := &DefaultStatsService{Repo: repo, Bookings: bookings}

	repo.On("SummaryByUser", "user-1").Return(&models.GameStatsSummary{}, nil)
	repo.On("RecentByUser", "user-1", recentGamesLimit).Return(nil, nil)
	bookings.On("FavoriteLocationByUser", "user-1").Return(nil, nil)

	summary, err := svc.GetUserSummary("user-1")
	require.NoError(t, err)

	assert.NotNil(t, summary.LastGames)
	assert.Empty(t, summary.LastGames)
	assert.Nil(t, summary.FavoriteLocation)
}

func TestGetUserHistoryDefaultsLimit(t *testing.T) {
	repo := new(MockStatsRepo)
	svc := &DefaultStatsService{Repo: repo}

	repo.On("RecentByUser", "user-1", historyLimit).Return([]models.PlayedGame{}, nil)

	_, err := svc.GetUserHistory("user-1", 0)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
