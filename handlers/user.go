package handlers

import (
	"errors"
	"net/http"

	"questbook/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes profile and onboarding operations.
type UserHandler struct {
	Users user.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{Users: us}
}

// GetProfileHandler returns the authenticated user's profile with quick
// booking stats attached.
func (uh *UserHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := uh.Users.GetProfileWithStats(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get user profile", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// CompleteOnboardingHandler sets the username and initial profile fields.
func (uh *UserHandler) CompleteOnboardingHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req user.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := uh.Users.CompleteOnboarding(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Onboarding failed", zap.String("userId", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Onboarding failed"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpdateProfileHandler updates the authenticated user's profile.
func (uh *UserHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req user.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := uh.Users.UpdateProfile(userID, req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update profile", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetUserStatsHandler returns the user's play and booking summary.
func (uh *UserHandler) GetUserStatsHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := uh.Users.GetUserStats(userID)
	if err != nil {
		logger.Error("Failed to get user stats", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
