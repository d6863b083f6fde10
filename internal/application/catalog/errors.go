package catalog

import "errors"

var (
	ErrNotFound  = errors.New("Listing not found")
	ErrForbidden = errors.New("Not authorized to modify this listing")
	ErrNoFields  = errors.New("No fields to update")
	ErrBadInput  = errors.New("Invalid listing data")
)
