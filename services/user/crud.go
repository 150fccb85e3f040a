package user

import (
	"fmt"
	"time"

	"questbook/models"
	"questbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUserByID retrieves a user by ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if userRec == nil {
		return nil, ErrUserNotFound
	}
	return userRec, nil
}

// CompleteOnboarding sets the username and fills the profile, marking the
// account as onboarded. Username must be free.
func (s *DefaultUserService) CompleteOnboarding(userID string, req OnboardingRequest) (*models.User, error) {
	logger := utils.GetLogger()

	existing, err := s.Repo.GetByUsername(req.Username)
	if err != nil {
		logger.Error("CompleteOnboarding: username check failed", zap.Error(err))
		return nil, fmt.Errorf("onboarding failed, please try again")
	}
	if existing != nil && existing.ID != userID {
		return nil, ErrUsernameTaken
	}

	update := bson.M{
		"username":            req.Username,
		"completedOnboarding": true,
		"profile": models.Profile{
			Name:           req.Name,
			Phone:          req.Phone,
			Gender:         req.Gender,
			BirthDate:      req.BirthDate,
			NativeLanguage: req.NativeLanguage,
			Status:         req.Status,
			Bio:            req.Bio,
		},
	}
	if err := s.Repo.UpdateSetDocument(userID, update); err != nil {
		logger.Error("CompleteOnboarding: update failed", zap.Error(err))
		return nil, fmt.Errorf("onboarding failed, please try again")
	}

	return s.GetUserByID(userID)
}

// UpdateProfile replaces the mutable profile fields.
func (s *DefaultUserService) UpdateProfile(userID string, req ProfileUpdateRequest) (*models.User, error) {
	logger := utils.GetLogger()

	current, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	profile := current.Profile
	profile.Name = req.Name
	profile.Gender = req.Gender
	profile.NativeLanguage = req.NativeLanguage
	profile.Status = req.Status
	profile.Bio = req.Bio
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
	}
	if req.Socials != nil {
		profile.Socials = *req.Socials
	}

	if err := s.Repo.UpdateSetDocument(userID, bson.M{"profile": profile}); err != nil {
		logger.Error("UpdateProfile: update failed", zap.Error(err))
		return nil, fmt.Errorf("profile update failed, please try again")
	}

	return s.GetUserByID(userID)
}

// GetProfileWithStats returns the user document with its bookings count.
func (s *DefaultUserService) GetProfileWithStats(userID string) (*ProfileResponse, error) {
	userRec, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	count, err := s.Bookings.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	resp := &ProfileResponse{User: *userRec}
	resp.Stats.BookingsCount = count
	return resp, nil
}

// GetUserStats summarizes the user's play activity from their bookings.
func (s *DefaultUserService) GetUserStats(userID string) (*UserStats, error) {
	count, err := s.Bookings.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookingStats, err := s.Bookings.StatsByUser(userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}

	favorite, err := s.Bookings.FavoriteLocationByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve favorite location: %w", err)
	}

	return &UserStats{
		TotalGames:       count,
		LastPlayed:       bookingStats.LastBookingDate,
		FavoriteLocation: favorite,
	}, nil
}

// GetAllUsers retrieves all users for the admin surface.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}
