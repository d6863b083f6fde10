package reviews

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrNoPriorOrder    = errors.New("No order found for this listing")
	ErrDuplicateReview = errors.New("You have already reviewed this listing")
	ErrBadRating       = errors.New("Rating must be between 1 and 5")
)
