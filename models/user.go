package models

import "time"

// Socials holds the user's optional social network handles.
type Socials struct {
	VK        string `bson:"vk,omitempty" json:"vk,omitempty"`
	Telegram  string `bson:"telegram,omitempty" json:"telegram,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Profile holds the user's personal details collected during onboarding.
type Profile struct {
	Name           string     `bson:"name" json:"name"`
	Phone          string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar         string     `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Gender         string     `bson:"gender,omitempty" json:"gender,omitempty"` // "male", "female", "other", "prefer-not-to-say"
	BirthDate      *time.Time `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	NativeLanguage string     `bson:"nativeLanguage,omitempty" json:"nativeLanguage,omitempty"`
	Status         string     `bson:"status,omitempty" json:"status,omitempty"` // "student", "working", "freelancer", "other"
	Bio            string     `bson:"bio,omitempty" json:"bio,omitempty"`
	Socials        Socials    `bson:"socials,omitempty" json:"socials,omitzero"`
}

// User represents a platform user.
// PasswordHash and TokenHash never leave the server.
type User struct {
	ID                  string    `bson:"id" json:"id"`
	Email               string    `bson:"email" json:"email"`
	Username            string    `bson:"username,omitempty" json:"username,omitempty"`
	PasswordHash        string    `bson:"passwordHash" json:"-"`
	Profile             Profile   `bson:"profile" json:"profile"`
	Role                string    `bson:"role" json:"role"` // "user" or "admin"
	CompletedOnboarding bool      `bson:"completedOnboarding" json:"completedOnboarding"`
	TokenHash           string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
