package models

import "time"

// WorkingHoursEntry describes one weekday's open/close hours for a location.
// Day follows time.Weekday numbering: 0 is Sunday, 6 is Saturday.
// From and To are whole hours, e.g. 10 and 22 for 10:00-22:00; To is exclusive
// when slots are generated. A weekday without an entry means the location is
// closed that day. If a weekday appears more than once, the first entry wins.
type WorkingHoursEntry struct {
	Day  int `bson:"day" json:"day"`
	From int `bson:"from" json:"from"`
	To   int `bson:"to" json:"to"`
}

// Game is a quiz game offered at a location.
type Game struct {
	ID         string   `bson:"id" json:"id"`
	Name       string   `bson:"name" json:"name"`
	Duration   int      `bson:"duration" json:"duration"` // minutes
	MinPlayers int      `bson:"minPlayers" json:"minPlayers"`
	MaxPlayers int      `bson:"maxPlayers" json:"maxPlayers"`
	Languages  []string `bson:"languages" json:"languages"` // subset of "ru", "en", "ge", "fr"
}

// Location is a physical venue offering one or more games.
type Location struct {
	ID             string              `bson:"id" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Country        string              `bson:"country" json:"country"`
	City           string              `bson:"city" json:"city"`
	Address        string              `bson:"address" json:"address"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Price          float64             `bson:"price" json:"price"`
	Capacity       int                 `bson:"capacity" json:"capacity"`
	FranchiseEmail string              `bson:"franchiseEmail" json:"franchiseEmail"`
	WorkingHours   []WorkingHoursEntry `bson:"workingHours" json:"workingHours"`
	Games          []Game              `bson:"games" json:"games"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// FindGame returns the game with the given id, or nil if the location does
// not offer it.
func (l *Location) FindGame(gameID string) *Game {
	for i := range l.Games {
		if l.Games[i].ID == gameID {
			return &l.Games[i]
		}
	}
	return nil
}

// HoursFor returns the working hours entry for the given weekday.
// First matching entry wins.
func (l *Location) HoursFor(day int) (WorkingHoursEntry, bool) {
	for _, wh := range l.WorkingHours {
		if wh.Day == day {
			return wh, true
		}
	}
	return WorkingHoursEntry{}, false
}
