package user

import (
	"time"

	bookingRepo "questbook/database/repository/booking"
	userRepo "questbook/database/repository/user"
	"questbook/models"
	"questbook/services/mail"
)

// UserService manages accounts, authentication and profile data.
type UserService interface {
	// Registration and authentication
	Register(email, password string) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	Logout(userID string) error
	ForgotPassword(email string) error
	ResetPassword(resetToken, newPassword string) error

	// Profile
	GetUserByID(userID string) (*models.User, error)
	CompleteOnboarding(userID string, req OnboardingRequest) (*models.User, error)
	UpdateProfile(userID string, req ProfileUpdateRequest) (*models.User, error)
	GetProfileWithStats(userID string) (*ProfileResponse, error)
	GetUserStats(userID string) (*UserStats, error)

	// Admin
	GetAllUsers() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Bookings bookingRepo.BookingRepository
	Mailer   mail.Mailer
}

// AuthResponse carries the user's ID and a fresh bearer token.
type AuthResponse struct {
	UserID  string `json:"userId"`
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// OnboardingRequest completes a freshly registered account.
type OnboardingRequest struct {
	Username       string     `json:"username" binding:"required"`
	Name           string     `json:"name" binding:"required"`
	Phone          string     `json:"phone"`
	Gender         string     `json:"gender"`
	BirthDate      *time.Time `json:"birthDate"`
	NativeLanguage string     `json:"nativeLanguage"`
	Status         string     `json:"status"`
	Bio            string     `json:"bio"`
}

// ProfileUpdateRequest updates profile fields; Name is mandatory.
type ProfileUpdateRequest struct {
	Name           string          `json:"name" binding:"required"`
	Gender         string          `json:"gender"`
	BirthDate      *time.Time      `json:"birthDate"`
	NativeLanguage string          `json:"nativeLanguage"`
	Status         string          `json:"status"`
	Bio            string          `json:"bio"`
	Socials        *models.Socials `json:"socials"`
}

// ProfileResponse is a user document with quick booking stats attached.
type ProfileResponse struct {
	models.User
	Stats struct {
		BookingsCount int64 `json:"bookingsCount"`
	} `json:"stats"`
}

// UserStats summarizes a user's play and booking activity.
type UserStats struct {
	TotalGames       int64                    `json:"totalGames"`
	LastPlayed       *time.Time               `json:"lastPlayed,omitempty"`
	FavoriteLocation *models.FavoriteLocation `json:"favoriteLocation"`
}
