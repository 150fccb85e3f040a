package handlers

import (
	userRepo "questbook/database/repository/user"
)

// HandlerBundle groups the handler sets and the repositories the route-level
// middleware needs.
type HandlerBundle struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Locations *LocationHandler
	Bookings  *BookingHandler
	Stats     *StatsHandler
	Admin     *AdminHandler

	UserRepo userRepo.UserRepository
}
