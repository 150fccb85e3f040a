package availability

import (
	"errors"
	"testing"
	"time"

	"questbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationSource struct {
	locations map[string]*models.Location
	err       error
}

func (f *fakeLocationSource) GetByID(id string) (*models.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.locations[id], nil
}

type fakeBookingSource struct {
	bookings []models.Booking
	err      error

	gotLocationID string
	gotFrom       time.Time
	gotTo         time.Time
	calls         int
}

func (f *fakeBookingSource) GetConfirmedInRange(locationID string, from, to time.Time) ([]models.Booking, error) {
	f.calls++
	f.gotLocationID = locationID
	f.gotFrom = from
	f.gotTo = to
	if f.err != nil {
		return nil, f.err
	}
	// Mimic the store: only confirmed bookings inside the range come back.
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status != models.BookingConfirmed {
			continue
		}
		if b.Slot.Before(from) || b.Slot.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// 2030-06-03 is a Monday.
const monday = "2030-06-03"

func mondayAt(hour int) time.Time {
	return time.Date(2030, 6, 3, hour, 0, 0, 0, time.UTC)
}

func newTestEngine(loc *models.Location, bookings *fakeBookingSource, now time.Time) *Engine {
	locs := &fakeLocationSource{locations: map[string]*models.Location{}}
	if loc != nil {
		locs.locations[loc.ID] = loc
	}
	if bookings == nil {
		bookings = &fakeBookingSource{}
	}
	return &Engine{
		Locations: locs,
		Bookings:  bookings,
		Now:       func() time.Time { return now },
	}
}

func venue(hours ...models.WorkingHoursEntry) *models.Location {
	return &models.Location{
		ID:           "loc-1",
		Name:         "Old Town Quest Hall",
		WorkingHours: hours,
		IsActive:     true,
	}
}

func TestGetAvailableSlots_FullOpenDay(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 14})
	eng := newTestEngine(loc, nil, mondayAt(0).AddDate(0, 0, -1))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	for i, s := range slots {
		assert.Equal(t, mondayAt(10+i), s.Time)
		assert.True(t, s.Available)
	}
}

func TestGetAvailableSlots_SlotsAreAscendingAndHourAligned(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 9, To: 18})
	eng := newTestEngine(loc, nil, mondayAt(0).AddDate(0, 0, -7))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i, s := range slots {
		assert.Zero(t, s.Time.Minute())
		assert.Zero(t, s.Time.Second())
		assert.Zero(t, s.Time.Nanosecond())
		assert.GreaterOrEqual(t, s.Time.Hour(), 9)
		assert.Less(t, s.Time.Hour(), 18)
		if i > 0 {
			assert.True(t, slots[i-1].Time.Before(s.Time))
		}
	}
}

func TestGetAvailableSlots_ClosedWeekday(t *testing.T) {
	// Open Tuesdays only; Monday is requested.
	loc := venue(models.WorkingHoursEntry{Day: 2, From: 10, To: 22})
	eng := newTestEngine(loc, nil, mondayAt(0).AddDate(0, 0, -1))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_NoWorkingHoursAtAll(t *testing.T) {
	loc := venue()
	eng := newTestEngine(loc, nil, mondayAt(0).AddDate(0, 0, -1))

	for _, date := range []string{monday, "2030-06-04", "2030-06-08", "2030-06-09"} {
		slots, err := eng.GetAvailableSlots("loc-1", date)
		require.NoError(t, err)
		assert.Empty(t, slots, "date %s", date)
	}
}

func TestGetAvailableSlots_InvertedHoursYieldNothing(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 18, To: 10})
	eng := newTestEngine(loc, nil, mondayAt(0).AddDate(0, 0, -1))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_SingleHourWindow(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 11})
	eng := newTestEngine(loc, nil, mondayAt(0).AddDate(0, 0, -1))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, mondayAt(10), slots[0].Time)
}

func TestGetAvailableSlots_FirstWeekdayEntryWins(t *testing.T) {
	loc := venue(
		models.WorkingHoursEntry{Day: 1, From: 10, To: 12},
		models.WorkingHoursEntry{Day: 1, From: 8, To: 20},
	)
	eng := newTestEngine(loc, nil, mondayAt(0).AddDate(0, 0, -1))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, mondayAt(10), slots[0].Time)
	assert.Equal(t, mondayAt(11), slots[1].Time)
}

func TestGetAvailableSlots_PastSlotsDropped(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 14})

	tests := []struct {
		name string
		now  time.Time
		want []time.Time
	}{
		{
			name: "mid-day cuts earlier hours",
			now:  mondayAt(11).Add(30 * time.Minute),
			want: []time.Time{mondayAt(12), mondayAt(13)},
		},
		{
			name: "exactly on the hour excludes that slot",
			now:  mondayAt(12),
			want: []time.Time{mondayAt(13)},
		},
		{
			name: "after closing leaves nothing",
			now:  mondayAt(14),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(loc, nil, tt.now)
			slots, err := eng.GetAvailableSlots("loc-1", monday)
			require.NoError(t, err)
			require.Len(t, slots, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, slots[i].Time)
				assert.True(t, slots[i].Time.After(tt.now))
			}
		})
	}
}

func TestGetAvailableSlots_ConfirmedBookingMarksSlot(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 12})
	bookings := &fakeBookingSource{bookings: []models.Booking{
		{ID: "b-1", LocationID: "loc-1", Slot: mondayAt(10), Status: models.BookingConfirmed},
	}}
	eng := newTestEngine(loc, bookings, mondayAt(0).AddDate(0, 0, -1))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, mondayAt(10), slots[0].Time)
	assert.False(t, slots[0].Available)
	assert.Equal(t, mondayAt(11), slots[1].Time)
	assert.True(t, slots[1].Available)
}

func TestGetAvailableSlots_CancelledBookingDoesNotBlock(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 12})
	bookings := &fakeBookingSource{bookings: []models.Booking{
		{ID: "b-1", LocationID: "loc-1", Slot: mondayAt(10), Status: models.BookingCancelled},
		{ID: "b-2", LocationID: "loc-1", Slot: mondayAt(11), Status: models.BookingPending},
	}}
	eng := newTestEngine(loc, bookings, mondayAt(0).AddDate(0, 0, -1))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestGetAvailableSlots_MatchIsByInstantNotHour(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 12})
	// Same hour-of-day, different date: must not shadow Monday's 10:00.
	otherDay := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)
	bookings := &fakeBookingSource{bookings: []models.Booking{
		{ID: "b-1", LocationID: "loc-1", Slot: otherDay, Status: models.BookingConfirmed},
	}}
	eng := newTestEngine(loc, bookings, mondayAt(0).AddDate(0, 0, -1))

	slots, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestGetAvailableSlots_DayRangeQuery(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 12})
	bookings := &fakeBookingSource{}
	eng := newTestEngine(loc, bookings, mondayAt(0).AddDate(0, 0, -1))

	_, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)

	assert.Equal(t, "loc-1", bookings.gotLocationID)
	assert.Equal(t, mondayAt(0), bookings.gotFrom)
	assert.Equal(t, time.Date(2030, 6, 3, 23, 59, 59, 999000000, time.UTC), bookings.gotTo)
}

func TestGetAvailableSlots_ClosedDaySkipsBookingQuery(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 2, From: 10, To: 22})
	bookings := &fakeBookingSource{}
	eng := newTestEngine(loc, bookings, mondayAt(0).AddDate(0, 0, -1))

	_, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	assert.Zero(t, bookings.calls)
}

func TestGetAvailableSlots_UnknownLocation(t *testing.T) {
	eng := newTestEngine(nil, nil, mondayAt(0))

	_, err := eng.GetAvailableSlots("missing", monday)
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestGetAvailableSlots_MalformedDate(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 12})
	eng := newTestEngine(loc, nil, mondayAt(0))

	for _, date := range []string{"not-a-date", "2030-13-40", "03-06-2030", "2030/06/03", ""} {
		_, err := eng.GetAvailableSlots("loc-1", date)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
	}
}

func TestGetAvailableSlots_Idempotent(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 14})
	bookings := &fakeBookingSource{bookings: []models.Booking{
		{ID: "b-1", LocationID: "loc-1", Slot: mondayAt(12), Status: models.BookingConfirmed},
	}}
	eng := newTestEngine(loc, bookings, mondayAt(9))

	first, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	second, err := eng.GetAvailableSlots("loc-1", monday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetAvailableSlots_LocationStoreFailure(t *testing.T) {
	eng := &Engine{
		Locations: &fakeLocationSource{err: errors.New("store down")},
		Bookings:  &fakeBookingSource{},
		Now:       func() time.Time { return mondayAt(0) },
	}

	_, err := eng.GetAvailableSlots("loc-1", monday)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLocationNotFound)
	assert.NotErrorIs(t, err, ErrInvalidDate)
}

func TestGetAvailableSlots_BookingStoreFailure(t *testing.T) {
	loc := venue(models.WorkingHoursEntry{Day: 1, From: 10, To: 12})
	bookings := &fakeBookingSource{err: errors.New("store down")}
	eng := newTestEngine(loc, bookings, mondayAt(0).AddDate(0, 0, -1))

	_, err := eng.GetAvailableSlots("loc-1", monday)
	require.Error(t, err)
}
