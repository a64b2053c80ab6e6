package errors

import "errors"

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// A missing account and a wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailInUse is returned when registering or updating to an email that
	// already belongs to another account.
	ErrEmailInUse = errors.New("email already in use")
	// ErrVehicleNotFound is returned when an inventory lookup misses.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrReviewNotFound is returned when a review lookup misses.
	ErrReviewNotFound = errors.New("review not found")
	// ErrNotReviewOwner is returned when an account edits a review it does not own.
	ErrNotReviewOwner = errors.New("review belongs to another account")
)
