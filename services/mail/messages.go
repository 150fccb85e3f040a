package mail

import (
	"fmt"
	"strings"
	"time"

	"questbook/models"
)

// languageNames maps supported game language codes to display names.
var languageNames = map[string]string{
	"ru": "Русский",
	"en": "English",
	"ge": "Deutsch",
	"fr": "Français",
}

// LanguageName returns the display name for a language code, falling back to
// the code itself.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// FormatDuration renders a game duration in minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// BookingConfirmation builds the message sent to the customer after a
// successful booking.
func BookingConfirmation(booking *models.Booking, location *models.Location, game *models.Game) (subject, body string) {
	subject = "Booking confirmed: " + game.Name

	var b strings.Builder
	b.WriteString("Your booking is confirmed!\n\n")
	fmt.Fprintf(&b, "Location: %s, %s\n", location.Name, location.City)
	fmt.Fprintf(&b, "Address: %s\n", location.Address)
	fmt.Fprintf(&b, "Game: %s\n", game.Name)
	fmt.Fprintf(&b, "Date and time: %s\n", booking.Slot.Format(time.RFC1123))
	fmt.Fprintf(&b, "Duration: %s\n", FormatDuration(game.Duration))
	fmt.Fprintf(&b, "Players: %d\n", booking.Players)
	fmt.Fprintf(&b, "Language: %s\n\n", LanguageName(booking.Language))
	b.WriteString("Thank you for booking! See you at the venue.\n")
	return subject, b.String()
}

// FranchiseeNotification builds the message sent to the location's
// franchisee about a new booking.
func FranchiseeNotification(booking *models.Booking, location *models.Location, game *models.Game, userName, userEmail string) (subject, body string) {
	subject = "New booking: " + game.Name

	var b strings.Builder
	b.WriteString("Booking details\n\n")
	fmt.Fprintf(&b, "Location: %s\n", location.Name)
	fmt.Fprintf(&b, "Game: %s\n", game.Name)
	fmt.Fprintf(&b, "Date and time: %s\n", booking.Slot.Format(time.RFC1123))
	fmt.Fprintf(&b, "Players: %d\n", booking.Players)
	fmt.Fprintf(&b, "Language: %s\n", LanguageName(booking.Language))
	fmt.Fprintf(&b, "Contact email: %s\n", booking.Email)
	if userName != "" || userEmail != "" {
		fmt.Fprintf(&b, "User: %s (%s)\n", userName, userEmail)
	}
	return subject, b.String()
}

// CancellationNotice builds the message sent to the customer when their
// booking is cancelled.
func CancellationNotice(location *models.Location) (subject, body string) {
	return "Booking cancelled",
		fmt.Sprintf("Your booking at %q has been cancelled.\n", location.Name)
}

// FranchiseeCancellation builds the message sent to the franchisee when a
// booking is cancelled.
func FranchiseeCancellation(booking *models.Booking, location *models.Location, userName, userEmail string) (subject, body string) {
	subject = "Booking cancelled"

	var b strings.Builder
	b.WriteString("A booking was cancelled:\n\n")
	fmt.Fprintf(&b, "Location: %s\n", location.Name)
	fmt.Fprintf(&b, "Date: %s\n", booking.Slot.Format(time.RFC1123))
	fmt.Fprintf(&b, "Customer: %s (%s)\n", userName, userEmail)
	return subject, b.String()
}

// PasswordReset builds the password reset message.
func PasswordReset(resetLink string) (subject, body string) {
	return "Password Reset",
		fmt.Sprintf("Click the link to reset your password: %s\n\nThis link will expire in 15 minutes.\n", resetLink)
}
