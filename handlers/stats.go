package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"questbook/models"
	"questbook/services/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsHandler exposes game statistics recording and reporting.
type StatsHandler struct {
	Stats stats.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss stats.StatsService) *StatsHandler {
	return &StatsHandler{Stats: ss}
}

// SaveStatsHandler records one game session. Called by the game server, so
// it is not behind user auth.
func (sh *StatsHandler) SaveStatsHandler(c *gin.Context) {
	logger := getLogger(c)

	var req stats.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	record, err := sh.Stats.Save(req)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidStats) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to save game stats", zap.String("userId", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save stats"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// UserSummaryHandler returns the authenticated user's play summary.
func (sh *StatsHandler) UserSummaryHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := sh.Stats.GetUserSummary(userID)
	if err != nil {
		logger.Error("Failed to build stats summary", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UserHistoryHandler lists the user's recent games.
func (sh *StatsHandler) UserHistoryHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	games, err := sh.Stats.GetUserHistory(userID, limit)
	if err != nil {
		logger.Error("Failed to fetch game history", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}
	if games == nil {
		games = []models.PlayedGame{}
	}

	c.JSON(http.StatusOK, games)
}

// AdminReportHandler returns the filtered, joined stats report.
func (sh *StatsHandler) AdminReportHandler(c *gin.Context) {
	logger := getLogger(c)

	filter := models.GameStatsFilter{
		LocationID: c.Query("locationId"),
		GameID:     c.Query("gameId"),
	}
	var ok bool
	if filter.DateFrom, ok = parseDateQuery(c, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = parseDateQuery(c, "dateTo"); !ok {
		return
	}

	rows, err := sh.Stats.GetAdminReport(filter)
	if err != nil {
		logger.Error("Failed to build stats report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	if rows == nil {
		rows = []models.AdminGameStatsRow{}
	}

	c.JSON(http.StatusOK, rows)
}

// parseDateQuery reads an optional YYYY-MM-DD query param as a UTC instant.
// Writes the 400 response itself on a malformed value.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ", expected YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}
