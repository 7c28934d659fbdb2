package preferences

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrRestaurantNotFound = errors.New("Restaurant not found")
	ErrInvalidInput       = errors.New("invalid input")
)
