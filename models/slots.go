package models

import "time"

// Slot is one bookable hour at a location on a given date. Slots are derived
// on demand from working hours and confirmed bookings; they are never stored.
type Slot struct {
	Time      time.Time `json:"time"`
	Available bool      `json:"available"`
}
