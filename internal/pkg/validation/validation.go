package validation

import (
	"regexp"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires at least 8 characters. The marketplace does not
// impose composition rules beyond length.
func IsValidPassword(password string) bool {
	return len(password) >= 8
}

func IsValidName(name string) bool {
	return name != ""
}

// IsValidRating checks the 1..5 review scale.
func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
