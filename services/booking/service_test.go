package booking

import (
	"errors"
	"testing"
	"time"

	"questbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// Mock repositories
type MockBookingRepo struct{ mock.Mock }
type MockLocationRepo struct{ mock.Mock }
type MockUserRepo struct{ mock.Mock }
type MockMailer struct{ mock.Mock }

func (m *MockBookingRepo) Create(booking *models.Booking) error {
	return m.Called(booking).Error(0)
}

func (m *MockBookingRepo) GetByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByUser(userID string) ([]models.Booking, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetConfirmedInRange(locationID string, from, to time.Time) ([]models.Booking, error) {
	args := m.Called(locationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) CancelOwn(bookingID, userID string) (*models.Booking, error) {
	args := m.Called(bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(bookingID, status string) (*models.Booking, error) {
	args := m.Called(bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) Find(filter models.BookingFilter) ([]models.Booking, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) CountByUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepo) StatsByUser(userID string, now time.Time) (*models.BookingStats, error) {
	args := m.Called(userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStats), args.Error(1)
}

func (m *MockBookingRepo) FavoriteLocationByUser(userID string) (*models.FavoriteLocation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoriteLocation), args.Error(1)
}

func (m *MockLocationRepo) GetByID(id string) (*models.Location, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepo) GetActive() ([]models.Location, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Location), args.Error(1)
}

func (m *MockLocationRepo) Create(location *models.Location) error {
	return m.Called(location).Error(0)
}

func (m *MockLocationRepo) Update(location *models.Location) error {
	return m.Called(location).Error(0)
}

func (m *MockUserRepo) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	return m.Called(id, updateDoc).Error(0)
}

func (m *MockUserRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	args := m.Called(id, projection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockMailer) Enqueue(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

var fixedNow = time.Date(2030, 6, 3, 9, 0, 0, 0, time.UTC)

func testLocation() *models.Location {
	return &models.Location{
		ID:             "loc-1",
		Name:           "Old Town Cellar",
		Address:        "12 Rustaveli Ave",
		FranchiseEmail: "owner@example.com",
		WorkingHours:   []models.WorkingHoursEntry{{Day: 1, From: 10, To: 22}},
		Games: []models.Game{{
			ID:         "game-1",
			Name:       "City Secrets",
			Duration:   60,
			MinPlayers: 2,
			MaxPlayers: 6,
			Languages:  []string{"ru", "en"},
		}},
		IsActive: true,
	}
}

func validRequest() CreateRequest {
	return CreateRequest{
		LocationID: "loc-1",
		GameID:     "game-1",
		Slot:       time.Date(2030, 6, 3, 12, 0, 0, 0, time.UTC),
		Players:    4,
		Language:   "en",
		Email:      "guest@example.com",
	}
}

func newService(repo *MockBookingRepo, locations *MockLocationRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:      repo,
		Locations: locations,
		Now:       func() time.Time { return fixedNow },
	}
}

func TestCreateBooking(t *testing.T) {
	repo := new(MockBookingRepo)
	locations := new(MockLocationRepo)
	svc := newService(repo, locations)

	locations.On("GetByID", "loc-1").Return(testLocation(), nil)
	repo.On("Create", mock.AnythingOfType("*models.Booking")).Return(nil)

	created, err := svc.Create("user-1", validRequest())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, models.BookingConfirmed, created.Status)
	assert.Equal(t, time.Date(2030, 6, 3, 12, 0, 0, 0, time.UTC), created.Slot)
	repo.AssertExpectations(t)
	locations.AssertExpectations(t)
}

func TestCreateBookingRejectsPastSlot(t *testing.T) {
	svc := newService(new(MockBookingRepo), new(MockLocationRepo))

	req := validRequest()
	req.Slot = fixedNow.Add(-time.Hour)

	_, err := svc.Create("user-1", req)
	assert.ErrorIs(t, err, ErrPastSlot)

	// The slot boundary itself counts as past.
	req.Slot = fixedNow
	_, err = svc.Create("user-1", req)
	assert.ErrorIs(t, err, ErrPastSlot)
}

func TestCreateBookingUnknownLocation(t *testing.T) {
	repo := new(MockBookingRepo)
	locations := new(MockLocationRepo)
	svc := newService(repo, locations)

	locations.On("GetByID", "loc-1").Return(nil, nil)

	_, err := svc.Create("user-1", validRequest())
	assert.ErrorIs(t, err, ErrLocationNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateBookingUnknownGame(t *testing.T) {
	repo := new(MockBookingRepo)
	locations := new(MockLocationRepo)
	svc := newService(repo, locations)

	locations.On("GetByID", "loc-1").Return(testLocation(), nil)

	req := validRequest()
	req.GameID = "game-999"

	_, err := svc.Create("user-1", req)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestCreateBookingPlayersOutOfRange(t *testing.T) {
	locations := new(MockLocationRepo)
	svc := newService(new(MockBookingRepo), locations)
	locations.On("GetByID", "loc-1").Return(testLocation(), nil)

	for _, players := range []int{1, 7} {
		req := validRequest()
		req.Players = players

		_, err := svc.Create("user-1", req)
		assert.ErrorIs(t, err, ErrInvalidPlayers, "players=%d", players)
	}
}

func TestCreateBookingUnsupportedLanguage(t *testing.T) {
	locations := new(MockLocationRepo)
	svc := newService(new(MockBookingRepo), locations)
	locations.On("GetByID", "loc-1").Return(testLocation(), nil)

	req := validRequest()
	req.Language = "de"

	_, err := svc.Create("user-1", req)
	assert.ErrorIs(t, err, ErrLanguageUnavailable)
}

func TestCreateBookingDefaultsLanguageListToRussian(t *testing.T) {
	repo := new(MockBookingRepo)
	locations := new(MockLocationRepo)
	svc := newService(repo, locations)

	location := testLocation()
	location.Games[0].Languages = nil
	locations.On("GetByID", "loc-1").Return(location, nil)
	repo.On("Create", mock.AnythingOfType("*models.Booking")).Return(nil)

	req := validRequest()
	req.Language = "ru"
	_, err := svc.Create("user-1", req)
	assert.NoError(t, err)

	req.Language = "en"
	_, err = svc.Create("user-1", req)
	assert.ErrorIs(t, err, ErrLanguageUnavailable)
}

func TestCreateBookingEnqueuesConfirmationMail(t *testing.T) {
	repo := new(MockBookingRepo)
	locations := new(MockLocationRepo)
	users := new(MockUserRepo)
	mailer := new(MockMailer)

	svc := newService(repo, locations)
	svc.Users = users
	svc.Mailer = mailer

	locations.On("GetByID", "loc-1").Return(testLocation(), nil)
	repo.On("Create", mock.AnythingOfType("*models.Booking")).Return(nil)
	users.On("GetByID", "user-1").Return(&models.User{
		ID:      "user-1",
		Email:   "account@example.com",
		Profile: models.Profile{Name: "Nino"},
	}, nil)
	mailer.On("Enqueue", "guest@example.com", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Enqueue", "owner@example.com", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create("user-1", validRequest())
	require.NoError(t, err)
	mailer.AssertNumberOfCalls(t, "Enqueue", 2)
}

func TestCreateBookingMailFailureDoesNotFail(t *testing.T) {
	repo := new(MockBookingRepo)
	locations := new(MockLocationRepo)
	mailer := new(MockMailer)

	svc := newService(repo, locations)
	svc.Mailer = mailer

	locations.On("GetByID", "loc-1").Return(testLocation(), nil)
	repo.On("Create", mock.AnythingOfType("*models.Booking")).Return(nil)
	mailer.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("queue down"))

	created, err := svc.Create("user-1", validRequest())
	assert.NoError(t, err)
	assert.NotNil(t, created)
}

func TestCancelBooking(t *testing.T) {
	repo := new(MockBookingRepo)
	locations := new(MockLocationRepo)
	svc := newService(repo, locations)

	cancelled := &models.Booking{
		ID:         "booking-1",
		UserID:     "user-1",
		LocationID: "loc-1",
		Status:     models.BookingCancelled,
	}
	repo.On("CancelOwn", "booking-1", "user-1").Return(cancelled, nil)
	locations.On("GetByID", "loc-1").Return(testLocation(), nil)

	got, err := svc.Cancel("booking-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
}

func TestCancelBookingNotOwnOrAlreadyCancelled(t *testing.T) {
	repo := new(MockBookingRepo)
	svc := newService(repo, new(MockLocationRepo))

	repo.On("CancelOwn", "booking-1", "intruder").Return(nil, nil)

	_, err := svc.Cancel("booking-1", "intruder")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSetStatus(t *testing.T) {
	repo := new(MockBookingRepo)
	svc := newService(repo, new(MockLocationRepo))

	updated := &models.Booking{ID: "booking-1", Status: models.BookingPending}
	repo.On("UpdateStatus", "booking-1", models.BookingPending).Return(updated, nil)

	got, err := svc.SetStatus("booking-1", models.BookingPending)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, got.Status)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	repo := new(MockBookingRepo)
	svc := newService(repo, new(MockLocationRepo))

	_, err := svc.SetStatus("booking-1", "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}
