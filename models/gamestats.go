package models

import "time"

// GameStats records the outcome of one played game session. Written by the
// game server after a session finishes.
type GameStats struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	LocationID      string    `bson:"locationId" json:"locationId"`
	GameID          string    `bson:"gameId" json:"gameId"`
	CorrectAnswers  int       `bson:"correctAnswers" json:"correctAnswers"`
	TotalQuestions  int       `bson:"totalQuestions" json:"totalQuestions"`
	AvgResponseTime float64   `bson:"avgResponseTime,omitempty" json:"avgResponseTime,omitempty"` // seconds
	CompletionTime  float64   `bson:"completionTime,omitempty" json:"completionTime,omitempty"`   // minutes
	Language        string    `bson:"language" json:"language"`
	Date            time.Time `bson:"date" json:"date"`
	Points          int       `bson:"points" json:"points"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Accuracy returns the percentage of correct answers.
func (g *GameStats) Accuracy() float64 {
	if g.TotalQuestions == 0 {
		return 0
	}
	return float64(g.CorrectAnswers) / float64(g.TotalQuestions) * 100
}

// GameStatsSummary aggregates a user's play history.
type GameStatsSummary struct {
	TotalGames        int     `bson:"totalGames" json:"totalGames"`
	TotalCorrect      int     `bson:"totalCorrect" json:"totalCorrect"`
	TotalQuestions    int     `bson:"totalQuestions" json:"totalQuestions"`
	AvgAccuracy       float64 `bson:"avgAccuracy" json:"avgAccuracy"`
	AvgCompletionTime float64 `bson:"avgCompletionTime" json:"avgCompletionTime"`
}

// PlayedGame is one row of a user's game history, joined with the location.
type PlayedGame struct {
	ID             string    `bson:"_id,omitempty" json:"id,omitempty"`
	GameID         string    `bson:"gameId" json:"gameId"`
	Date           time.Time `bson:"date" json:"date"`
	LocationName   string    `bson:"locationName" json:"locationName"`
	CorrectAnswers int       `bson:"correctAnswers" json:"correctAnswers"`
	TotalQuestions int       `bson:"totalQuestions" json:"totalQuestions"`
	Accuracy       float64   `bson:"accuracy" json:"accuracy"`
	CompletionTime float64   `bson:"completionTime,omitempty" json:"completionTime,omitempty"`
}

// AdminGameStatsRow is one row of the admin stats report, joined with the
// user and location collections.
type AdminGameStatsRow struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserName       string    `bson:"userName" json:"userName"`
	UserEmail      string    `bson:"userEmail" json:"userEmail"`
	LocationName   string    `bson:"locationName" json:"locationName"`
	GameID         string    `bson:"gameId" json:"gameId"`
	CorrectAnswers int       `bson:"correctAnswers" json:"correctAnswers"`
	TotalQuestions int       `bson:"totalQuestions" json:"totalQuestions"`
	Accuracy       float64   `bson:"accuracy" json:"accuracy"`
	CompletionTime float64   `bson:"completionTime,omitempty" json:"completionTime,omitempty"`
	Date           time.Time `bson:"date" json:"date"`
}

// GameStatsFilter narrows the admin stats report.
type GameStatsFilter struct {
	LocationID string
	GameID     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// FavoriteLocation is the location a user has booked most often.
type FavoriteLocation struct {
	LocationID   string `bson:"locationId" json:"locationId"`
	LocationName string `bson:"locationName" json:"locationName"`
	GamesCount   int    `bson:"gamesCount" json:"gamesCount"`
}
