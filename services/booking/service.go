package booking

import (
	"fmt"
	"time"

	"questbook/models"
	"questbook/services/mail"
	"questbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates the request against the location's games and records a
// confirmed booking. Confirmation emails go out through the mail queue; a
// queue failure does not roll the booking back.
func (s *DefaultBookingService) Create(userID string, req CreateRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if !req.Slot.After(s.now()) {
		return nil, ErrPastSlot
	}

	location, err := s.Locations.GetByID(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location: %w", err)
	}
	if location == nil {
		return nil, ErrLocationNotFound
	}

	game := location.FindGame(req.GameID)
	if game == nil {
		return nil, ErrGameNotFound
	}

	if req.Players < game.MinPlayers || req.Players > game.MaxPlayers {
		return nil, fmt.Errorf("%w: must be between %d and %d",
			ErrInvalidPlayers, game.MinPlayers, game.MaxPlayers)
	}

	supported := game.Languages
	if len(supported) == 0 {
		supported = []string{"ru"}
	}
	if !contains(supported, req.Language) {
		return nil, ErrLanguageUnavailable
	}

	booking := &models.Booking{
		ID:         uuid.New().String(),
		UserID:     userID,
		LocationID: req.LocationID,
		GameID:     req.GameID,
		Slot:       req.Slot.UTC(),
		Players:    req.Players,
		Language:   req.Language,
		Email:      req.Email,
		Status:     models.BookingConfirmed,
	}

	if err := s.Repo.Create(booking); err != nil {
		logger.Error("Create: failed to store booking", zap.Error(err))
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.sendConfirmationMail(booking, location, game, userID)

	return booking, nil
}

// GetUserBookings lists the user's bookings, newest slot first.
func (s *DefaultBookingService) GetUserBookings(userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// Cancel flips the user's own confirmed booking to cancelled and notifies
// both sides by email.
func (s *DefaultBookingService) Cancel(bookingID, userID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := s.Repo.CancelOwn(bookingID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	location, err := s.Locations.GetByID(booking.LocationID)
	if err != nil || location == nil {
		logger.Warn("Cancel: location lookup failed, skipping notification",
			zap.String("locationId", booking.LocationID), zap.Error(err))
		return booking, nil
	}

	userName, userEmail := s.lookupUserContact(userID)
	if userEmail != "" {
		subject, body := mail.CancellationNotice(location)
		s.enqueueMail(userEmail, subject, body)
	}
	subject, body := mail.FranchiseeCancellation(booking, location, userName, userEmail)
	s.enqueueMail(location.FranchiseEmail, subject, body)

	return booking, nil
}

// GetUserStats aggregates the user's booking summary.
func (s *DefaultBookingService) GetUserStats(userID string) (*models.BookingStats, error) {
	stats, err := s.Repo.StatsByUser(userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}
	return stats, nil
}

// Find lists bookings for the admin surface.
func (s *DefaultBookingService) Find(filter models.BookingFilter) ([]models.Booking, error) {
	bookings, err := s.Repo.Find(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// SetStatus updates a booking's status (admin operation).
func (s *DefaultBookingService) SetStatus(bookingID, status string) (*models.Booking, error) {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	booking, err := s.Repo.UpdateStatus(bookingID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *DefaultBookingService) sendConfirmationMail(booking *models.Booking, location *models.Location, game *models.Game, userID string) {
	subject, body := mail.BookingConfirmation(booking, location, game)
	s.enqueueMail(booking.Email, subject, body)

	userName, userEmail := s.lookupUserContact(userID)
	subject, body = mail.FranchiseeNotification(booking, location, game, userName, userEmail)
	s.enqueueMail(location.FranchiseEmail, subject, body)
}

func (s *DefaultBookingService) lookupUserContact(userID string) (name, email string) {
	if s.Users == nil {
		return "", ""
	}
	userRec, err := s.Users.GetByID(userID)
	if err != nil || userRec == nil {
		return "", ""
	}
	return userRec.Profile.Name, userRec.Email
}

func (s *DefaultBookingService) enqueueMail(to, subject, body string) {
	if s.Mailer == nil || to == "" {
		return
	}
	if err := s.Mailer.Enqueue(to, subject, body); err != nil {
		utils.GetLogger().Error("failed to enqueue email",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
