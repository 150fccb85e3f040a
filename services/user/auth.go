package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"questbook/config"
	"questbook/models"
	servicemail "questbook/services/mail"
	"questbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	authTokenTTL  = time.Hour
	resetTokenTTL = 15 * time.Minute
	bcryptCost    = 12
)

// Register creates an account from email and password, hashes the password,
// and returns a fresh bearer token. The profile name defaults to the email
// local part until onboarding completes.
func (s *DefaultUserService) Register(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		logger.Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashed),
		Profile: models.Profile{
			Name: strings.SplitN(email, "@", 2)[0],
		},
		Role: models.RoleUser,
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Email, authTokenTTL)
	if err != nil {
		logger.Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	userObj.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(&userObj); err != nil {
		logger.Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	s.cacheTokenHash(userObj.ID, userObj.TokenHash)

	return &AuthResponse{
		UserID:  userObj.ID,
		Token:   token,
		Message: "Registration successful. Complete onboarding in your profile.",
	}, nil
}

// Authenticate verifies the credentials and rotates the user's token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, authTokenTTL)
	if err != nil {
		logger.Error("Authenticate: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(userRec.ID, bson.M{"tokenHash": tokenHash}); err != nil {
		logger.Error("Authenticate: failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	s.cacheTokenHash(userRec.ID, tokenHash)

	return &AuthResponse{UserID: userRec.ID, Token: token}, nil
}

// Logout clears the user's stored token hash so the current token stops
// validating.
func (s *DefaultUserService) Logout(userID string) error {
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"tokenHash": ""}); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	s.dropTokenHash(userID)
	return nil
}

// ForgotPassword emails a short-lived reset link. An unknown email is
// reported to the caller as not found, matching the original behavior.
func (s *DefaultUserService) ForgotPassword(email string) error {
	logger := utils.GetLogger()

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("ForgotPassword: failed to fetch user", zap.Error(err))
		return fmt.Errorf("password reset failed, please try again later")
	}
	if userRec == nil {
		return ErrUserNotFound
	}

	resetToken, err := utils.GenerateToken(userRec.ID, userRec.Email, resetTokenTTL)
	if err != nil {
		logger.Error("ForgotPassword: failed to generate reset token", zap.Error(err))
		return fmt.Errorf("password reset failed, please try again later")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.ClientURL, resetToken)
	subject, body := servicemail.PasswordReset(resetLink)
	if err := s.Mailer.Enqueue(email, subject, body); err != nil {
		logger.Error("ForgotPassword: failed to enqueue reset email", zap.Error(err))
		return fmt.Errorf("password reset failed, please try again later")
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password. All issued
// auth tokens are invalidated by clearing the stored token hash.
func (s *DefaultUserService) ResetPassword(resetToken, newPassword string) error {
	logger := utils.GetLogger()

	userID, err := utils.ExtractIDFromToken(resetToken)
	if err != nil {
		return ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		logger.Error("ResetPassword: failed to hash password", zap.Error(err))
		return fmt.Errorf("password reset failed, please try again later")
	}

	update := bson.M{"passwordHash": string(hashed), "tokenHash": ""}
	if err := s.Repo.UpdateSetDocument(userID, update); err != nil {
		logger.Error("ResetPassword: failed to update password", zap.Error(err))
		return fmt.Errorf("password reset failed, please try again later")
	}
	s.dropTokenHash(userID)
	return nil
}

// cacheTokenHash best-effort stores the token hash for the auth middleware.
func (s *DefaultUserService) cacheTokenHash(userID, tokenHash string) {
	cache := utils.GetAuthCacheClient()
	if cache == nil {
		return
	}
	ctx := context.Background()
	if err := cache.Set(ctx, utils.AuthCachePrefix+userID, tokenHash, authTokenTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache token hash", zap.Error(err))
	}
}

func (s *DefaultUserService) dropTokenHash(userID string) {
	cache := utils.GetAuthCacheClient()
	if cache == nil {
		return
	}
	if err := cache.Del(context.Background(), utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("failed to drop cached token hash", zap.Error(err))
	}
}
